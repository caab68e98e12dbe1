package config

import (
	"flag"
	"os"
	"strings"

	"github.com/pingcap/errors"
)

func flagToEnv(prefix, name string) string {
	return prefix + "_" + strings.ToUpper(strings.Replace(name, "-", "_", -1))
}

// setFlagsFromEnv sets every flag not given on the command line from its
// PREFIX_FLAG_NAME environment variable, if that is set
func setFlagsFromEnv(prefix string, fs *flag.FlagSet) error {
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		alreadySet[f.Name] = true
	})

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if err != nil || alreadySet[f.Name] {
			return
		}
		key := flagToEnv(prefix, f.Name)
		if val := os.Getenv(key); val != "" {
			if serr := fs.Set(f.Name, val); serr != nil {
				err = errors.Errorf("invalid environment value %q for %s: %v", val, key, serr)
			}
		}
	})
	return err
}
