package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
)

// Envelope - единица обмена по соединению: код команды и непрозрачная строка.
type Envelope struct {
	Command Command `json:"command"`
	Payload string  `json:"payload"`
}

type wireEnvelope struct {
	Command *string `json:"command"`
	Payload *string `json:"payload"`
}

// Encode сериализует конверт в компактный JSON.
// Полезная нагрузка экранируется целиком, поэтому разделители внутри нее не теряются.
func Encode(cmd Command, payload string) (string, error) {
	if cmd == "" {
		return "", errors.New("encode envelope: empty command")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Envelope{Command: cmd, Payload: payload}); err != nil {
		return "", fmt.Errorf("encode envelope %s: %w", cmd, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Decode разбирает строку, полученную из соединения.
// Любой дефект формата возвращается как *errors.ProtocolError.
func Decode(wire string) (Envelope, error) {
	var raw wireEnvelope
	if err := json.Unmarshal([]byte(wire), &raw); err != nil {
		return Envelope{}, &apperrors.ProtocolError{Raw: wire, Err: err}
	}
	if raw.Command == nil || *raw.Command == "" {
		return Envelope{}, &apperrors.ProtocolError{Raw: wire, Err: errors.New("missing command")}
	}
	if raw.Payload == nil {
		return Envelope{}, &apperrors.ProtocolError{Raw: wire, Err: errors.New("missing payload")}
	}
	return Envelope{Command: Command(*raw.Command), Payload: *raw.Payload}, nil
}
