package ws

import (
	"encoding/json"
	"testing"
	"time"

	"sky-drone/backend/internal/sim"
)

func TestGetCurrentServerTime(t *testing.T) {
	// Проверяем, что функция возвращает текущее время в миллисекундах
	now := time.Now().UnixNano() / int64(time.Millisecond)
	serverTime := GetCurrentServerTime()

	// Допускаем разницу в 100 мс (что более чем достаточно для локального выполнения)
	if serverTime < now-100 || serverTime > now+100 {
		t.Errorf("GetCurrentServerTime() returned time too far from current time. Got %d, expected around %d", serverTime, now)
	}
}

func TestNewInfoMessage(t *testing.T) {
	msg := NewInfoMessage("hello")

	if msg.Type != MessageTypeInfo {
		t.Errorf("Expected message type %s, got %s", MessageTypeInfo, msg.Type)
	}
	if msg.Message != "hello" {
		t.Errorf("Expected message hello, got %s", msg.Message)
	}
}

func TestNewPongMessage(t *testing.T) {
	msg := NewPongMessage(123456)

	if msg.Type != MessageTypePong {
		t.Errorf("Expected message type %s, got %s", MessageTypePong, msg.Type)
	}
	if msg.ClientTime != 123456 {
		t.Errorf("Expected ClientTime 123456, got %d", msg.ClientTime)
	}
	if msg.ServerTime == 0 {
		t.Error("Expected ServerTime to be set, got 0")
	}
}

func TestNewAckMessage(t *testing.T) {
	msg := NewAckMessage("INPUT", 42)

	if msg.Type != MessageTypeAck {
		t.Errorf("Expected message type %s, got %s", MessageTypeAck, msg.Type)
	}
	if msg.Cmd != "INPUT" {
		t.Errorf("Expected Cmd INPUT, got %s", msg.Cmd)
	}
	if msg.ClientTime != 42 {
		t.Errorf("Expected ClientTime 42, got %d", msg.ClientTime)
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, msg interface{})
		error bool
	}{
		{
			name: "CommandMessage - INPUT",
			json: `{"type":"cmd","cmd":"INPUT","client_time":100,"data":{"forward":true,"boost":true}}`,
			check: func(t *testing.T, msg interface{}) {
				cmdMsg, ok := msg.(*CommandMessage)
				if !ok {
					t.Fatalf("Expected *CommandMessage, got %T", msg)
				}
				if cmdMsg.Cmd != "INPUT" {
					t.Errorf("Expected Cmd INPUT, got %s", cmdMsg.Cmd)
				}
				if cmdMsg.ClientTime != 100 {
					t.Errorf("Expected ClientTime 100, got %d", cmdMsg.ClientTime)
				}
			},
		},
		{
			name: "PingMessage",
			json: `{"type":"ping","client_time":555}`,
			check: func(t *testing.T, msg interface{}) {
				pingMsg, ok := msg.(*PingMessage)
				if !ok {
					t.Fatalf("Expected *PingMessage, got %T", msg)
				}
				if pingMsg.ClientTime != 555 {
					t.Errorf("Expected ClientTime 555, got %d", pingMsg.ClientTime)
				}
			},
		},
		{
			name: "InfoMessage",
			json: `{"type":"info","message":"ok"}`,
			check: func(t *testing.T, msg interface{}) {
				infoMsg, ok := msg.(*InfoMessage)
				if !ok {
					t.Fatalf("Expected *InfoMessage, got %T", msg)
				}
				if infoMsg.Message != "ok" {
					t.Errorf("Expected message ok, got %s", infoMsg.Message)
				}
			},
		},
		{
			name:  "Unknown type",
			json:  `{"type":"teleport"}`,
			error: true,
		},
		{
			name:  "Invalid JSON",
			json:  `{"type":`,
			error: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tt.json))
			if tt.error {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, msg)
		})
	}
}

// Проверяем, что данные команды INPUT разбираются в флаги управления
// ровно так, как их шлет клиент.
func TestInputIntentDecoding(t *testing.T) {
	raw := `{"type":"cmd","cmd":"INPUT","data":{"forward":true,"strafe_left":true,"yaw_right":true,"fire":true}}`

	msg, err := ParseMessage([]byte(raw))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cmdMsg := msg.(*CommandMessage)

	dataBytes, err := json.Marshal(cmdMsg.Data)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var intent sim.InputIntent
	if err := json.Unmarshal(dataBytes, &intent); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !intent.Forward || !intent.StrafeLeft || !intent.YawRight || !intent.Fire {
		t.Errorf("Expected forward/strafe_left/yaw_right/fire set, got %+v", intent)
	}
	if intent.Backward || intent.Boost || intent.Ascend {
		t.Errorf("Expected other flags unset, got %+v", intent)
	}
}

func TestGetMessageType(t *testing.T) {
	msgType, err := GetMessageType([]byte(`{"type":"pong","client_time":1}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if msgType != MessageTypePong {
		t.Errorf("Expected type %s, got %s", MessageTypePong, msgType)
	}

	if _, err := GetMessageType([]byte(`not json`)); err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}
