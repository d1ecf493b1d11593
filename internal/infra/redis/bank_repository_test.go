package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"quantum-shift/internal/domain"
	"quantum-shift/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:" + domain.DefaultBankID) {
		t.Fatalf("expected bank cached in redis")
	}
	if ttl := mr.TTL("bank:" + domain.DefaultBankID); ttl < time.Minute {
		t.Fatalf("expected ttl >= 1m, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get cached bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Len() != bank.Len() || cached.Questions[9].CorrectIndex != bank.Questions[9].CorrectIndex {
		t.Fatalf("cached bank differs from loaded bank")
	}

	if err := repo.Invalidate(context.Background(), domain.DefaultBankID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetBank(context.Background(), domain.DefaultBankID)
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestBankRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	_ = mr.Set("bank:"+domain.DefaultBankID, `{"id":"web-basics","questions":[]}`)
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(domain.DefaultBank())}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), domain.DefaultBankID)
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 || bank.Len() != 10 {
		t.Fatalf("expected reload over corrupt entry, calls=%d len=%d", loader.calls, bank.Len())
	}
}

func TestBankRepositoryUnknownBank(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewBankRepository(newClient(mr), memory.NewStaticBankLoader(), time.Minute)
	if _, err := repo.GetBank(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if mr.Exists("bank:missing") {
		t.Fatalf("unknown bank must not be cached")
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
