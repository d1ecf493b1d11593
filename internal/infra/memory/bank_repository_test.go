package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quantum-shift/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.GetBank(context.Background(), domain.DefaultBankID); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	bank, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if bank.Len() != 10 {
		t.Fatalf("expected 10 questions, got %d", bank.Len())
	}
}

func TestBankRepositoryExpires(t *testing.T) {
	loader := &countingLoader{BankLoader: NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(loader, time.Minute)
	now := time.Unix(1000, 0)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetBank(context.Background(), domain.DefaultBankID)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetBank(context.Background(), domain.DefaultBankID)
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, got %d calls", loader.calls)
	}
}

func TestBankRepositoryRejectsMalformedBank(t *testing.T) {
	bad := domain.Bank{ID: "bad", Questions: []domain.Question{{Text: "q", Options: []string{"only"}}}}
	loader := &countingLoader{BankLoader: NewStaticBankLoader(bad)}
	repo := NewBankRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.GetBank(context.Background(), "bad"); !errors.Is(err, domain.ErrTooFewOptions) {
			t.Fatalf("expected too few options, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("malformed bank must not be cached, got %d calls", loader.calls)
	}
}

func TestBankRepositoryUnknownBank(t *testing.T) {
	repo := NewBankRepository(NewStaticBankLoader(), time.Minute)
	if _, err := repo.GetBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChainLoaderFallsThrough(t *testing.T) {
	other := domain.Bank{ID: "other", Questions: []domain.Question{{Text: "q", Options: []string{"a", "b"}}}}
	chain := ChainLoader{NewStaticBankLoader(domain.DefaultBank()), NewStaticBankLoader(other)}

	bank, err := chain.LoadBank(context.Background(), "other")
	if err != nil || bank.ID != "other" {
		t.Fatalf("expected other bank, got %+v %v", bank, err)
	}
	if _, err := chain.LoadBank(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestParseBank(t *testing.T) {
	doc := []byte(`
id: colors
title: Colors
questions:
  - text: What color is the sky?
    options: [green, blue]
    correct_index: 1
    explanation: Rayleigh scattering.
`)
	bank, err := ParseBank(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bank.ID != "colors" || bank.Questions[0].CorrectIndex != 1 || bank.Questions[0].Explanation == "" {
		t.Fatalf("unexpected bank %+v", bank)
	}

	bad := []byte(`
id: broken
questions:
  - text: Pick
    options: [a, b]
    correct_index: 4
`)
	if _, err := ParseBank(bad); !errors.Is(err, domain.ErrCorrectIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if _, err := ParseBank([]byte("questions: []")); err == nil {
		t.Fatalf("expected error for bank without id")
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}
