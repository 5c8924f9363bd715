package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSend(t *testing.T) {
	var got sendMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	b := NewBot("TOKEN", "42")
	b.APIBase = srv.URL
	if err := b.Send(context.Background(), "今週の手続き"); err != nil {
		t.Fatal(err)
	}
	if got.ChatID != "42" || got.Text != "今週の手続き" {
		t.Errorf("sent %+v", got)
	}
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	b := NewBot("TOKEN", "42")
	b.APIBase = srv.URL
	err := b.Send(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("err = %v", err)
	}
}

func TestDisabledBotDropsMessages(t *testing.T) {
	b := NewBot("", "42")
	if b.Enabled {
		t.Fatal("bot without token should be disabled")
	}
	if err := b.Send(context.Background(), "x"); err != nil {
		t.Errorf("disabled send returned %v", err)
	}
}
