package protocol

import (
	"errors"
	"testing"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payloads := []string{
		"",
		"DONE",
		`{"$100": 250}~<>~{"$100": 250}`,
		"12:00:01<~>INFO<~>hello<*>12:00:02<~>ERROR<~>error:9",
		"~",
		`quoted "value" with \ backslash`,
		"line one\nline two\r\n\ttab",
		`{"command":"websocket","payload":"2"}`,
		"G0 X10 <b>bold</b> & more",
		"unicode °/min ✓",
	}

	for _, cmd := range Commands() {
		for _, payload := range payloads {
			wire, err := Encode(cmd, payload)
			require.NoError(t, err)

			env, err := Decode(wire)
			require.NoError(t, err, "decode %s", wire)
			require.Equal(t, cmd, env.Command)
			require.Equal(t, payload, env.Payload)
		}
	}
}

func TestEncodeRejectsEmptyCommand(t *testing.T) {
	_, err := Encode("", "x")
	require.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"GCD~done",
		"null",
		"[]",
		`{"payload":"x"}`,
		`{"command":"","payload":"x"}`,
		`{"command":"FTS"}`,
		`{"command":42,"payload":"x"}`,
	}

	for _, wire := range cases {
		_, err := Decode(wire)
		require.Error(t, err, "wire %q", wire)

		var perr *apperrors.ProtocolError
		require.True(t, errors.As(err, &perr), "wire %q", wire)
		require.Equal(t, wire, perr.Raw)
	}
}

func TestDecodeKeepsUnknownCommand(t *testing.T) {
	env, err := Decode(`{"command":"ZZZ","payload":"1"}`)
	require.NoError(t, err)
	require.Equal(t, Command("ZZZ"), env.Command)
	require.False(t, Known(env.Command))
	require.True(t, Known(CmdFetchSettings))
}

func TestParseSettingsFetch(t *testing.T) {
	res, err := ParseSettingsFetch(`{"$100": 250.0, "$11": 0.010, "port": "/dev/ttyS3", "check": false}~<>~{"$100": 250}`)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"$100":  "250",
		"$11":   "0.01",
		"port":  "/dev/ttyS3",
		"check": "false",
	}, res.Current)
	require.True(t, res.HasDefaults)
	require.Equal(t, "250", res.Defaults["$100"])

	res, err = ParseSettingsFetch(`{"polling_interval": 100}`)
	require.NoError(t, err)
	require.False(t, res.HasDefaults)
	require.Nil(t, res.Defaults)

	_, err = ParseSettingsFetch(`not json`)
	require.Error(t, err)

	_, err = ParseSettingsFetch(`{"a":1}~<>~broken`)
	require.Error(t, err)
}

func TestEncodeSettings(t *testing.T) {
	out, err := EncodeSettings(map[string]string{"$100": "300"})
	require.NoError(t, err)
	require.JSONEq(t, `{"$100":"300"}`, out)
}

func TestParseValueReply(t *testing.T) {
	variable, value, err := ParseValueReply(`{"command": "websocket", "payload": "2"}`)
	require.NoError(t, err)
	require.Equal(t, VarSessions, variable)
	require.Equal(t, "2", value)

	_, _, err = ParseValueReply("2")
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(`{"grbl_operation": "Run", "print_progress": 12.5, "grbl_lockout": 1}`)
	require.NoError(t, err)
	require.Equal(t, "Run", status["grbl_operation"])
	require.Equal(t, "12.5", status["print_progress"])
	require.Equal(t, "1", status["grbl_lockout"])
}

func TestSplitAndParseLog(t *testing.T) {
	lines := SplitLogChunk("<*>10:00:00<~>INFO<~>Successfully setup logging\n<*>10:00:01<~>WARNING<~>low\n<*><*>raw text")
	require.Len(t, lines, 3)

	require.Equal(t, models.LogEntry{Timestamp: "10:00:00", Severity: models.SeverityInfo, Message: "Successfully setup logging"}, ParseLogLine(lines[0]))
	require.Equal(t, models.SeverityWarning, ParseLogLine(lines[1]).Severity)
	require.Equal(t, models.LogEntry{Severity: models.SeverityPlain, Message: "raw text"}, ParseLogLine(lines[2]))

	require.Equal(t, models.SeverityPlain, ParseLogLine("t<~>DEBUG<~>x").Severity)
	require.Empty(t, SplitLogChunk(""))
}

func TestGrblPatterns(t *testing.T) {
	require.True(t, MatchAlarm("GRBL > ALARM:1"))
	require.False(t, MatchAlarm("alarm cleared"))

	code, ok := MatchFirmwareError("GRBL > 12: error:9")
	require.True(t, ok)
	require.Equal(t, 9, code)
	require.Equal(t, "9 - G-code lock", DescribeError(code))
	require.Equal(t, "99 - Unknown error", DescribeError(99))

	_, ok = MatchFirmwareError("no errors here")
	require.False(t, ok)
}
