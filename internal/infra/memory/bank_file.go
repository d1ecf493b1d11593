package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"quantum-shift/internal/domain"
)

// ReadBankFile parses and validates a YAML bank file.
func ReadBankFile(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("read bank file: %w", err)
	}
	return ParseBank(data)
}

// ParseBank decodes a YAML bank document and validates it.
func ParseBank(data []byte) (domain.Bank, error) {
	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("decode bank: %w", err)
	}
	if bank.ID == "" {
		return domain.Bank{}, fmt.Errorf("decode bank: missing id")
	}
	if err := bank.Validate(); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}

// ChainLoader tries each loader in order and returns the first bank found.
type ChainLoader []BankLoader

func (c ChainLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	for _, loader := range c {
		bank, err := loader.LoadBank(ctx, bankID)
		if err == nil {
			return bank, nil
		}
		if !errors.Is(err, domain.ErrBankNotFound) {
			return domain.Bank{}, err
		}
	}
	return domain.Bank{}, domain.ErrBankNotFound
}
