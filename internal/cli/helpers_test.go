package cli

import (
	"testing"

	"github.com/dotup-cli/dotup/internal/brew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{" 1 ", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := isTruthy(tt.value); got != tt.expected {
				t.Errorf("isTruthy(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestResolveGroups(t *testing.T) {
	manifest := &brew.Manifest{
		Groups: map[string]brew.Group{
			"ai":           {Casks: []string{"claude"}},
			"productivity": {Casks: []string{"raycast"}},
			"social":       {Casks: []string{"slack"}},
		},
	}

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		for _, name := range manifest.GroupNames() {
			cmd.Flags().Bool(name, false, "")
		}
		return cmd
	}

	t.Run("all off by default", func(t *testing.T) {
		viper.Reset()
		enabled := resolveGroups(newCmd(), manifest)
		for name, on := range enabled {
			if on {
				t.Errorf("group %q enabled without any toggle", name)
			}
		}
	})

	t.Run("flag wins", func(t *testing.T) {
		viper.Reset()
		cmd := newCmd()
		if err := cmd.Flags().Set("ai", "true"); err != nil {
			t.Fatal(err)
		}
		enabled := resolveGroups(cmd, manifest)
		if !enabled["ai"] {
			t.Error("--ai did not enable the ai group")
		}
		if enabled["social"] {
			t.Error("social enabled without a toggle")
		}
	})

	t.Run("bare env variable", func(t *testing.T) {
		viper.Reset()
		t.Setenv("PRODUCTIVITY", "1")
		enabled := resolveGroups(newCmd(), manifest)
		if !enabled["productivity"] {
			t.Error("PRODUCTIVITY=1 did not enable the productivity group")
		}
	})

	t.Run("explicit flag beats env", func(t *testing.T) {
		viper.Reset()
		t.Setenv("AI", "1")
		cmd := newCmd()
		if err := cmd.Flags().Set("ai", "false"); err != nil {
			t.Fatal(err)
		}
		enabled := resolveGroups(cmd, manifest)
		if enabled["ai"] {
			t.Error("--ai=false should override AI=1")
		}
	})

	t.Run("viper config key", func(t *testing.T) {
		viper.Reset()
		viper.Set("social", true)
		enabled := resolveGroups(newCmd(), manifest)
		if !enabled["social"] {
			t.Error("config key did not enable the social group")
		}
	})
}
