package services

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/SehaTech/auth_service/internal/dto"
)

// SmsSender delivers one message to one mobile. The gateway integration
// lives behind this; the dev default just logs.
type SmsSender interface {
	Send(mobile, message string) error
}

// LogSender writes the SMS to the service log instead of a gateway.
type LogSender struct{}

func (LogSender) Send(mobile, message string) error {
	log.Printf("[SMS] to=%s body=%q", mobile, message)
	return nil
}

// SmsService consumes sms.send events and hands them to the sender.
// It satisfies interfaces.ConsumerHandler.
type SmsService struct {
	sender SmsSender
}

func NewSmsService(sender SmsSender) *SmsService {
	return &SmsService{sender: sender}
}

func (s *SmsService) HandleMessage(message string) error {
	var event dto.SmsRequestedEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		return err
	}
	if event.Mobile == "" || event.Message == "" {
		return errors.New("incomplete sms event")
	}
	return s.sender.Send(event.Mobile, event.Message)
}
