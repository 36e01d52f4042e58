package main

import (
	"os"
	"reflect"
	"testing"

	"github.com/glitchsec/osintkit/internal/config"
	"github.com/glitchsec/osintkit/internal/log"
	"github.com/glitchsec/osintkit/internal/model"
)

func TestBuildCompanyPipeline(t *testing.T) {
	t.Parallel()

	logger := log.NewSecureLogger(os.Stderr, false)

	t.Run("domain unlocks all steps", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Keys = config.Keyring{
			Perplexity: "p",
			Apollo:     "a",
			RapidAPI:   "r",
			Hunter:     "h",
		}

		p := buildCompanyPipeline(cfg, logger, true, func(*model.Brief) {})

		want := []string{"seed", "background", "apollo-company", "linkedin-company", "hunter-domain", "dns", "whois"}
		if got := p.StepNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("StepNames() = %v, want %v", got, want)
		}
	})

	t.Run("no domain keeps only background", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Keys = config.Keyring{
			Perplexity: "p",
			Apollo:     "a",
			RapidAPI:   "r",
			Hunter:     "h",
		}

		p := buildCompanyPipeline(cfg, logger, false, nil)

		want := []string{"background"}
		if got := p.StepNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("StepNames() = %v, want %v", got, want)
		}
	})

	t.Run("keyless with domain still does recon", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()

		p := buildCompanyPipeline(cfg, logger, true, nil)

		want := []string{"dns", "whois"}
		if got := p.StepNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("StepNames() = %v, want %v", got, want)
		}
	})
}

// TestCompanyCmdNoKeysNoDomain checks the company command refuses to run
// with nothing to do.
func TestCompanyCmdNoKeysNoDomain(t *testing.T) {
	t.Setenv("PERPLEXITY_API_KEY", "")
	t.Setenv("APOLLO_API_KEY", "")
	t.Setenv("RAPIDAPI_KEY", "")
	t.Setenv("HUNTER_API_KEY", "")

	root := NewRootCmd()
	root.SetArgs([]string{"company", "--keys", emptyKeysFile(t), "Acme Corp"})

	if err := root.Execute(); err == nil {
		t.Error("expected error when no provider keys and no domain are given")
	}
}
