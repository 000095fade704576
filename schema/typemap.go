package schema

// MapType maps a declared kind to its JSON Schema type.
// Only the exact kinds KindInt, KindFloat and KindBool are recognized;
// everything else, including KindNone and composite annotations, is TypeString.
func MapType(k Kind) Type {
	switch k {
	case KindInt:
		return TypeInteger
	case KindFloat:
		return TypeNumber
	case KindBool:
		return TypeBoolean
	default:
		return TypeString
	}
}
