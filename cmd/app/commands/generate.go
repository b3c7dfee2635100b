package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	productKeyUseCase "github.com/nandolawson/keyforge95/internal/productkey/usecase"
)

type generateOutput struct {
	KeyType string   `json:"key_type"`
	Keys    []string `json:"keys"`
}

// RunGenerate generates count product keys of the given type and writes them to writer,
// one key per line in text format.
func RunGenerate(
	ctx context.Context,
	useCase productKeyUseCase.ProductKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	keyTypeStr string,
	count int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	keyType, err := domain.ParseKeyType(keyTypeStr)
	if err != nil {
		return err
	}

	var keys []*domain.ProductKey
	if count == 1 {
		key, err := useCase.Generate(ctx, keyType)
		if err != nil {
			return fmt.Errorf("failed to generate product key: %w", err)
		}
		keys = []*domain.ProductKey{key}
	} else {
		keys, err = useCase.GenerateBatch(ctx, keyType, count)
		if err != nil {
			return fmt.Errorf("failed to generate product keys: %w", err)
		}
	}

	logger.Debug("product keys generated",
		slog.String("key_type", keyType.String()),
		slog.Int("count", len(keys)),
	)

	if format == "json" {
		output := generateOutput{KeyType: keyType.String(), Keys: make([]string, 0, len(keys))}
		for _, key := range keys {
			output.Keys = append(output.Keys, key.Value)
		}
		return writeJSON(writer, output)
	}

	for _, key := range keys {
		if _, err := fmt.Fprintln(writer, key.Value); err != nil {
			return err
		}
	}
	return nil
}
