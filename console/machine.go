package console

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const (
	MinBatch = -1
	MaxBatch = 4

	fieldPrintButton = "button_print"
)

// Machine отправляет станку команды оператора и показывает подтверждения бэкенда.
type Machine struct {
	send         Sender
	sink         UISink
	logger       logrus.FieldLogger
	printStarted func()

	gcodeLoaded bool
}

// NewMachine создает набор команд станка. printStarted вызывается,
// когда бэкенд принял задание на печать.
func NewMachine(send Sender, sink UISink, printStarted func(), logger logrus.FieldLogger) *Machine {
	return &Machine{
		send:         send,
		sink:         sink,
		printStarted: printStarted,
		logger:       logger.WithField("component", "machine"),
	}
}

func (m *Machine) Home() error        { return m.send.Send(protocol.CmdHome, "") }
func (m *Machine) FeedHold() error    { return m.send.Send(protocol.CmdFeedHold, "") }
func (m *Machine) FeedRelease() error { return m.send.Send(protocol.CmdFeedRelease, "") }

// ToggleLighting переключает подсветку рабочей зоны.
func (m *Machine) ToggleLighting() error {
	return m.send.Send(protocol.CmdLighting, "")
}

// GCodeLoaded сообщает, принял ли бэкенд программу в этой сессии.
func (m *Machine) GCodeLoaded() bool {
	return m.gcodeLoaded
}

// SubmitGCode загружает программу на бэкенд. Строки-комментарии бэкенд отбрасывает сам.
func (m *Machine) SubmitGCode(program string) error {
	if strings.TrimSpace(program) == "" {
		return &apperrors.ValidationError{Key: "gcode", Reason: "program is empty"}
	}
	m.gcodeLoaded = false
	return m.send.Send(protocol.CmdGCode, program)
}

// Print отправляет параметры задания (SET) и сразу запускает печать (PRN).
func (m *Machine) Print(opts models.PrintOptions) error {
	if err := validatePrintOptions(opts); err != nil {
		return err
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encode print options: %w", err)
	}
	if err := m.send.Send(protocol.CmdPrintSettings, string(data)); err != nil {
		return err
	}
	return m.send.Send(protocol.CmdPrint, "")
}

// RawCommand отправляет строку прошивке без изменений.
func (m *Machine) RawCommand(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return &apperrors.ValidationError{Key: "command", Reason: "command is empty"}
	}
	return m.send.Send(protocol.CmdRaw, line)
}

// RotateTo поворачивает деталь по оси Y для выравнивания.
func (m *Machine) RotateTo(position float64) error {
	return m.RawCommand("G0Y" + strconv.FormatFloat(position, 'f', -1, 64))
}

// ChangeBatch выбирает позицию партии. -1 возвращает ось A в ноль.
func (m *Machine) ChangeBatch(n int) error {
	if n < MinBatch || n > MaxBatch {
		return &apperrors.ValidationError{
			Key:    "batch",
			Reason: fmt.Sprintf("must be between %d and %d", MinBatch, MaxBatch),
		}
	}
	return m.send.Send(protocol.CmdBatch, strconv.Itoa(n))
}

// Manual отправляет произвольную известную команду.
func (m *Machine) Manual(cmd protocol.Command, payload string) error {
	if !protocol.Known(cmd) {
		return &apperrors.ValidationError{Key: "command", Reason: "unknown command " + string(cmd)}
	}
	return m.send.Send(cmd, payload)
}

// Handlers возвращает обработчики ответов на команды станка.
func (m *Machine) Handlers() map[protocol.Command]Handler {
	return map[protocol.Command]Handler{
		protocol.CmdHome:          m.confirm("Requested homing cycle!"),
		protocol.CmdFeedHold:      m.confirm("Feed hold received"),
		protocol.CmdFeedRelease:   m.confirm("Continue request received"),
		protocol.CmdGCode:         HandlerFunc(m.onGCode),
		protocol.CmdPrintSettings: m.logged(protocol.CmdPrintSettings),
		protocol.CmdPrint:         HandlerFunc(m.onPrint),
		protocol.CmdRaw:           m.logged(protocol.CmdRaw),
		protocol.CmdLighting:      m.logged(protocol.CmdLighting),
		protocol.CmdBatch:         m.logged(protocol.CmdBatch),
		protocol.CmdEcho:          HandlerFunc(m.onEcho),
	}
}

func (m *Machine) onGCode(payload string) {
	if payload != protocol.Done {
		m.logger.WithField("payload", shorten(payload)).Warn("Unexpected GCODE reply")
		return
	}
	m.gcodeLoaded = true
	m.sink.SetField(fieldPrintButton, "enabled")
	m.notifySuccess("Backend received GCODE successfully!")
}

func (m *Machine) onPrint(payload string) {
	if payload != protocol.Done {
		m.logger.WithField("payload", shorten(payload)).Warn("Unexpected print reply")
		return
	}
	m.logger.Info("Print started")
	m.sink.Redirect(models.PageMonitor)
	if m.printStarted != nil {
		m.printStarted()
	}
}

func (m *Machine) onEcho(payload string) {
	m.logger.WithField("payload", payload).Info("ECO")
}

func (m *Machine) confirm(message string) Handler {
	return HandlerFunc(func(payload string) {
		if payload == protocol.Done {
			m.notifySuccess(message)
		}
	})
}

func (m *Machine) logged(cmd protocol.Command) Handler {
	return HandlerFunc(func(payload string) {
		m.logger.WithFields(logrus.Fields{"command": cmd, "result": shorten(payload)}).Debug("Command acknowledged")
	})
}

func (m *Machine) notifySuccess(message string) {
	m.sink.Notify(models.Notification{
		Message:  message,
		Level:    models.LevelSuccess,
		Duration: 4 * time.Second,
	})
}

// validatePrintOptions повторяет проверки бэкенда, чтобы ошибка была видна до отправки.
func validatePrintOptions(opts models.PrintOptions) error {
	var verrs apperrors.ValidationErrors
	if _, err := strconv.ParseFloat(strings.TrimSpace(opts.Radius), 64); err != nil {
		verrs = append(verrs, &apperrors.ValidationError{Key: "radius", Reason: "must be a number"})
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(opts.Length), 64); err != nil {
		verrs = append(verrs, &apperrors.ValidationError{Key: "length", Reason: "must be a number"})
	}
	if _, err := strconv.Atoi(strings.TrimSpace(opts.Batch)); err != nil {
		verrs = append(verrs, &apperrors.ValidationError{Key: "batch", Reason: "must be an integer"})
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
