// Package jobs contains the background job handlers run by the worker.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/DukeRupert/courtside/internal/domain"
	"github.com/DukeRupert/courtside/internal/worker"
)

// classify marks errors that cannot succeed on retry as permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch domain.ErrorCode(err) {
	case domain.ENOTFOUND, domain.EINVALID, domain.ETOOLARGE:
		return worker.NewPermanentError(err)
	}
	return err
}

func decode(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}
	return nil
}
