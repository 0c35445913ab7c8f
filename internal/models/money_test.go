package models

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "two decimals", input: "12.99", want: 1299},
		{name: "whole units", input: "5", want: 500},
		{name: "one decimal", input: "12.9", want: 1290},
		{name: "zero", input: "0.00", want: 0},
		{name: "leading dot", input: ".99", want: 99},
		{name: "whitespace", input: " 3.50 ", want: 350},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-1.00", wantErr: true},
		{name: "signed fraction", input: "12.-9", wantErr: true},
		{name: "plus sign", input: "+1.00", wantErr: true},
		{name: "three decimals", input: "1.999", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "trailing dot", input: "12.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseMoney(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{amount: 1299, want: "12.99"},
		{amount: 2598, want: "25.98"},
		{amount: 0, want: "0.00"},
		{amount: 5, want: "0.05"},
		{amount: 100, want: "1.00"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMoneyMul(t *testing.T) {
	if got := Money(1299).Mul(2); got != 2598 {
		t.Fatalf("Money(1299).Mul(2) = %d, want 2598", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	type payload struct {
		Price Money `json:"price"`
	}

	data, err := json.Marshal(payload{Price: 1299})
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(data) != `{"price":12.99}` {
		t.Fatalf("marshal = %s, want {\"price\":12.99}", data)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"price":12.99}`), &decoded); err != nil {
		t.Fatalf("unmarshal number returned error: %v", err)
	}
	if decoded.Price != 1299 {
		t.Fatalf("unmarshal number = %d, want 1299", decoded.Price)
	}

	if err := json.Unmarshal([]byte(`{"price":"3.50"}`), &decoded); err != nil {
		t.Fatalf("unmarshal string returned error: %v", err)
	}
	if decoded.Price != 350 {
		t.Fatalf("unmarshal string = %d, want 350", decoded.Price)
	}
}
