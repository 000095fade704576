// Package server keeps a registry of tools and the input schemas
// synthesized for them.
//
// A tool is either declaration-only, publishing a schema built from an
// explicit parameter list:
//
//	srv := server.New(server.Info{Name: "images", Version: "1.0.0"})
//
//	srv.Tool("resize").
//	    Doc("Resize an image.\n\nwidth: target width in pixels\n").
//	    Declare(
//	        schema.Param{Name: "width", Kind: schema.KindInt},
//	        schema.Param{Name: "keep_ratio", Kind: schema.KindBool, HasDefault: true},
//	    )
//
// or backed by a handler whose struct input supplies the parameters:
//
//	type SearchInput struct {
//	    Query string `json:"query"`
//	    Limit *int   `json:"limit"`
//	}
//
//	srv.Tool("search").
//	    Doc("Search the index.\nquery: terms to match\nlimit: maximum hits\n").
//	    Handler(func(ctx context.Context, in SearchInput) ([]string, error) {
//	        return nil, nil
//	    })
//
// Functions parsed by package introspect are registered with RegisterFunc.
package server
