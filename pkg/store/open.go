package store

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the store selected by spec:
//
//	""                      no archive (nil, nil)
//	"file"                  FileStore in DefaultDir
//	"file://<dir>"          FileStore in dir
//	"mongodb://..."         MongoStore
//	"mongodb+srv://..."     MongoStore
func Open(ctx context.Context, spec string) (Store, error) {
	switch {
	case spec == "" || spec == "none":
		return nil, nil
	case spec == "file":
		return NewFileStore("")
	case strings.HasPrefix(spec, "file://"):
		return NewFileStore(strings.TrimPrefix(spec, "file://"))
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		return NewMongoStore(ctx, MongoConfig{URI: spec})
	}
	return nil, fmt.Errorf("unsupported archive %q (want file, file://DIR or mongodb://...)", spec)
}
