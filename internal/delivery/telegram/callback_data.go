package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionPlay  = "play"
	actionFlag  = "flag"
	actionNext  = "next"
	actionReset = "reset"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// ref extracts the session reference carried in the first two params.
func (cd callbackData) ref() (entities.SessionRef, error) {
	if len(cd.Params) < 2 {
		return entities.SessionRef{}, fmt.Errorf("%w: %q", errMalformedCallback, cd.Raw)
	}

	id, err := uuid.Parse(cd.Params[0])
	if err != nil {
		return entities.SessionRef{}, fmt.Errorf("%w: session id: %w", errMalformedCallback, err)
	}

	round, err := strconv.Atoi(cd.Params[1])
	if err != nil || round < 0 || round > entities.RoundsPerGame {
		return entities.SessionRef{}, fmt.Errorf("%w: round %q", errMalformedCallback, cd.Params[1])
	}

	return entities.SessionRef{SessionID: id, Round: round}, nil
}

// choice extracts the tapped flag index of a flag callback.
func (cd callbackData) choice() (int, error) {
	if len(cd.Params) != 3 {
		return 0, fmt.Errorf("%w: %q", errMalformedCallback, cd.Raw)
	}

	idx, err := strconv.Atoi(cd.Params[2])
	if err != nil {
		return 0, fmt.Errorf("%w: choice %q", errMalformedCallback, cd.Params[2])
	}
	return idx, nil
}

func refParams(ref entities.SessionRef, extra ...string) []string {
	params := []string{ref.SessionID.String(), strconv.Itoa(ref.Round)}
	return append(params, extra...)
}

// buildPlayCallback builds callback data for starting a game.
func buildPlayCallback() string {
	return callbackData{Action: actionPlay}.encode()
}

// buildFlagCallback builds callback data for tapping a flag.
func buildFlagCallback(ref entities.SessionRef, index int) string {
	return callbackData{
		Action: actionFlag,
		Params: refParams(ref, strconv.Itoa(index)),
	}.encode()
}

// buildNextCallback builds callback data for the Continue button of a round result.
func buildNextCallback(ref entities.SessionRef) string {
	return callbackData{
		Action: actionNext,
		Params: refParams(ref),
	}.encode()
}

// buildResetCallback builds callback data for the Reset and Restart buttons.
func buildResetCallback(ref entities.SessionRef) string {
	return callbackData{
		Action: actionReset,
		Params: refParams(ref),
	}.encode()
}
