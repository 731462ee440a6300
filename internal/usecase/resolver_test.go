// File: internal/usecase/resolver_test.go
package usecase

import (
	"testing"

	"voice-assistant-api/internal/domain/model"
)

func TestResolveContext_UserContextWins(t *testing.T) {
	t.Parallel()

	rc := ResolveContext("minha empresa vende sapatos", "documento recuperado")
	if rc.Source != model.SourceUserContext {
		t.Fatalf("source = %s, want %s", rc.Source, model.SourceUserContext)
	}
	if rc.Text != "minha empresa vende sapatos" {
		t.Fatalf("text = %q", rc.Text)
	}
}

func TestResolveContext_WhitespaceUserFallsToRetrieved(t *testing.T) {
	t.Parallel()

	rc := ResolveContext("   \n\t ", "documento recuperado")
	if rc.Source != model.SourceRetrievedContext {
		t.Fatalf("source = %s, want %s", rc.Source, model.SourceRetrievedContext)
	}
	if rc.Text != "documento recuperado" {
		t.Fatalf("text = %q", rc.Text)
	}
}

func TestResolveContext_BothEmptyUsesFallback(t *testing.T) {
	t.Parallel()

	rc := ResolveContext("", "")
	if rc.Source != model.SourceNoContext {
		t.Fatalf("source = %s, want %s", rc.Source, model.SourceNoContext)
	}
	if rc.Text != NoContextFallback {
		t.Fatalf("text = %q, want fallback sentinel", rc.Text)
	}
}

func TestResolveContext_NeverBlends(t *testing.T) {
	t.Parallel()

	rc := ResolveContext("contexto do usuário", "contexto recuperado")
	if rc.Text == "contexto do usuário\n\ncontexto recuperado" {
		t.Fatal("candidates must not be concatenated")
	}
	if rc.Text != "contexto do usuário" {
		t.Fatalf("text = %q", rc.Text)
	}
}

func TestResolveContext_TrimsChosenText(t *testing.T) {
	t.Parallel()

	rc := ResolveContext("", "  conteúdo  ")
	if rc.Text != "conteúdo" {
		t.Fatalf("text = %q, want trimmed", rc.Text)
	}
}
