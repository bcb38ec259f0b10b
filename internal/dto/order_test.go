package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yasminalves16/restaurante/internal/service"
)

func TestMesaText(t *testing.T) {
	cases := map[string]string{
		`5`:     "5",
		`"5"`:   "5",
		`5.0`:   "5",
		`" 7 "`: " 7 ",
		`null`:  "",
		``:      "",
		`2.5`:   "2.5",
		`"abc"`: "abc",
		`true`:  "true",
	}
	for raw, want := range cases {
		if got := MesaText(json.RawMessage(raw)); got != want {
			t.Errorf("MesaText(%s) = %q, want %q", raw, got, want)
		}
	}
}

func TestCreateOrderRequest_Input(t *testing.T) {
	var req CreateOrderRequest
	body := `{"order_type":"comanda","mesa":12,"items":[{"menu_item_id":"6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e5f","quantity":2}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in, err := req.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if in.Mesa != "12" || len(in.Items) != 1 || in.Items[0].Quantity != 2 {
		t.Fatalf("unexpected input: %+v", in)
	}

	req.Items[0].MenuItemID = "not-a-uuid"
	_, err = req.Input()
	var ve *service.ValidationError
	if !errors.As(err, &ve) || ve.Field != "menu_item_id" {
		t.Fatalf("expected menu_item_id validation error, got %v", err)
	}
}

func TestMoney(t *testing.T) {
	if got := Money(1940); got != 19.4 {
		t.Fatalf("Money(1940) = %v", got)
	}
	if got := Money(3780); got != 37.8 {
		t.Fatalf("Money(3780) = %v", got)
	}
}
