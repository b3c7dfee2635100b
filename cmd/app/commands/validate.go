package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	productKeyUseCase "github.com/nandolawson/keyforge95/internal/productkey/usecase"
)

// ErrKeyRejected is returned by RunValidate after reporting a rejected key, so the
// process can exit non-zero without logging an application error.
var ErrKeyRejected = errors.New("product key rejected")

type validateOutput struct {
	Key     string `json:"key"`
	Valid   bool   `json:"valid"`
	KeyType string `json:"key_type,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// RunValidate validates key and reports the verdict to writer.
// Returns ErrKeyRejected for an invalid key and any other error for internal failures.
func RunValidate(
	ctx context.Context,
	useCase productKeyUseCase.ProductKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	key string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	output := validateOutput{Key: key}

	keyType, err := useCase.Validate(ctx, key)
	if err != nil {
		code, reason, ok := domain.Rejection(err)
		if !ok {
			return fmt.Errorf("failed to validate product key: %w", err)
		}
		output.Error = code
		output.Message = reason
		logger.Debug("product key rejected", slog.String("reason", code))
	} else {
		output.Valid = true
		output.KeyType = keyType.String()
	}

	if format == "json" {
		err = writeJSON(writer, output)
	} else {
		err = writeValidateText(writer, output)
	}
	if err != nil {
		return err
	}

	if !output.Valid {
		return ErrKeyRejected
	}
	return nil
}

func writeValidateText(w io.Writer, output validateOutput) error {
	if output.Valid {
		_, err := fmt.Fprintf(w, "Key is valid (%s)\n", output.KeyType)
		return err
	}
	_, err := fmt.Fprintf(w, "Key is invalid: %s\n", output.Message)
	return err
}
