package config

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
)

// Resolver is a kong resolver that fills every flag left off the command
// line from Load: defaults, then the env file, then the YAML file, then the
// environment. envFlag and fileFlag name the flags carrying the two paths;
// they are read from the command line before anything is loaded.
func Resolver(envFlag, fileFlag string) kong.Resolver {
	return &resolver{envFlag: envFlag, fileFlag: fileFlag}
}

type resolver struct {
	envFlag  string
	fileFlag string

	once sync.Once
	cfg  Config
	err  error
}

func (r *resolver) Validate(*kong.Application) error { return nil }

func (r *resolver) Resolve(ctx *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if flag.Tag == nil {
		return nil, nil
	}
	key := yamlKey(flag.Tag.Get("yaml"))
	if key == "" {
		return nil, nil
	}
	r.once.Do(func() {
		r.cfg = Default()
		r.err = load(flagString(ctx, r.envFlag), flagString(ctx, r.fileFlag), &r.cfg)
	})
	if r.err != nil {
		return nil, r.err
	}
	return fieldValue(r.cfg, key), nil
}

func flagString(ctx *kong.Context, name string) string {
	for _, flag := range ctx.Flags() {
		if flag.Name != name {
			continue
		}
		if s, ok := ctx.FlagValue(flag).(string); ok {
			return s
		}
	}
	return ""
}

func yamlKey(tag string) string {
	key, _, _ := strings.Cut(tag, ",")
	if key == "-" {
		return ""
	}
	return key
}

// fieldValue renders the Config field tagged with yaml key in the form kong
// parses flag values from. Empty lists resolve to nothing.
func fieldValue(cfg Config, key string) any {
	typ := reflect.TypeOf(cfg)
	val := reflect.ValueOf(cfg)
	for i := 0; i < typ.NumField(); i++ {
		if yamlKey(typ.Field(i).Tag.Get("yaml")) != key {
			continue
		}
		field := val.Field(i)
		switch field.Kind() {
		case reflect.String:
			return field.String()
		case reflect.Int, reflect.Int64:
			return strconv.FormatInt(field.Int(), 10)
		case reflect.Bool:
			return strconv.FormatBool(field.Bool())
		case reflect.Slice:
			items, ok := field.Interface().([]string)
			if !ok || len(items) == 0 {
				return nil
			}
			return strings.Join(items, ",")
		}
		return nil
	}
	return nil
}
