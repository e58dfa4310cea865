package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveString prefers an explicitly set flag over the config value at key.
func resolveString(cmd *cobra.Command, value, key, flagName string) string {
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key, flagName string) []string {
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

// resolveBool falls back to value when the key is unset, since false is a
// meaningful config value.
func resolveBool(cmd *cobra.Command, value bool, key, flagName string) bool {
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	return flag != nil && flag.Changed
}
