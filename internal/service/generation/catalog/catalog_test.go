package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeCredentials maps provider families to keys for tests.
type fakeCredentials map[Provider]string

func (f fakeCredentials) Credential(p Provider) string { return f[p] }

func TestAvailableGatedByCredentials(t *testing.T) {
	creds := fakeCredentials{ProviderOpenAI: "sk-test"}

	var ids []string
	for _, m := range Available(creds) {
		ids = append(ids, m.ID)
	}

	want := []string{"gpt-3.5-turbo", "gpt-4o", "gpt-4.5-preview"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Available() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailablePreservesGroupOrder(t *testing.T) {
	creds := fakeCredentials{
		ProviderOpenAI: "a",
		ProviderClaude: "b",
		ProviderGemini: "c",
	}

	available := Available(creds)
	if len(available) != 9 {
		t.Fatalf("expected 9 models, got %d", len(available))
	}
	if available[0].Provider != ProviderOpenAI || available[3].Provider != ProviderClaude || available[6].Provider != ProviderGemini {
		t.Errorf("catalog group order not preserved: %v", available)
	}
	// Cheap tier comes first within each group.
	if available[0].CostTier != 1 || available[3].CostTier != 1 || available[6].CostTier != 1 {
		t.Errorf("groups not ordered cheap-first")
	}
}

func TestAvailableFillsContextWindow(t *testing.T) {
	creds := fakeCredentials{ProviderClaude: "k"}
	for _, m := range Available(creds) {
		if m.ContextWindow != 200000 {
			t.Errorf("model %s context window = %d, want 200000", m.ID, m.ContextWindow)
		}
	}
}

func TestResolveProvider(t *testing.T) {
	creds := fakeCredentials{ProviderOpenAI: "a", ProviderGemini: "c"}

	tests := []struct {
		model string
		want  Provider
	}{
		{"gpt-4o", ProviderOpenAI},
		{"gemini-1.5-pro", ProviderGemini},
		{"claude-3-haiku-20240307", ProviderUnknown}, // no credential
		{"not-a-model", ProviderUnknown},
	}

	for _, tt := range tests {
		if got := ResolveProvider(tt.model, creds); got != tt.want {
			t.Errorf("ResolveProvider(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestValidateSelectedModelFallsBackToFirstAvailable(t *testing.T) {
	// Only a Claude credential is present; the configured OpenAI model is
	// no longer usable and the cheapest Claude model should be substituted.
	creds := fakeCredentials{ProviderClaude: "k"}

	id, substituted := ValidateSelectedModel("gpt-4.5-preview", creds)
	if id != "claude-3-haiku-20240307" {
		t.Errorf("substituted model = %q, want claude-3-haiku-20240307", id)
	}
	if !substituted {
		t.Error("expected substitution to be signalled")
	}
}

func TestValidateSelectedModelKeepsValidSelection(t *testing.T) {
	creds := fakeCredentials{ProviderOpenAI: "a"}

	id, substituted := ValidateSelectedModel("gpt-4o", creds)
	if id != "gpt-4o" || substituted {
		t.Errorf("ValidateSelectedModel = (%q, %v), want (gpt-4o, false)", id, substituted)
	}
}

func TestValidateSelectedModelNoProviders(t *testing.T) {
	id, substituted := ValidateSelectedModel("gpt-4o", fakeCredentials{})
	if id != "" || !substituted {
		t.Errorf("ValidateSelectedModel with no creds = (%q, %v), want (\"\", true)", id, substituted)
	}
}
