package order

import (
	"strings"
	"testing"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

func TestComposeSingleLineOrder(t *testing.T) {
	var c cart.Cart
	item := models.MenuItem{ID: "1", Name: "Classic Burger", Price: 1299, Category: "Burgers"}
	c.Add(item)
	c.Add(item)

	info := models.CustomerInfo{
		Name:          "Ana",
		Address:       "Rua X, 10",
		PaymentMethod: "PIX",
		PhoneNumber:   "+55 11 99999-0000",
	}

	ord := NewOrder(&c, info)
	if ord.Total != 2598 {
		t.Fatalf("total = %v, want 2598", ord.Total)
	}

	composed := Compose(ord)

	wantMessage := "🍽️ *Food Order*%0A%0A" +
		"👤 *Customer:* Ana%0A" +
		"📍 *Address:* Rua X, 10%0A" +
		"💳 *Payment:* PIX%0A" +
		"📱 *Phone:* +55 11 99999-0000%0A%0A" +
		"*Order Details:*%0A" +
		"• 2x Classic Burger - $25.98%0A" +
		"%0A*Total: $25.98*%0A%0A" +
		"Thank you for your order! 😊"

	if composed.Message != wantMessage {
		t.Fatalf("message mismatch:\ngot:  %q\nwant: %q", composed.Message, wantMessage)
	}
	if composed.Recipient != "5511999990000" {
		t.Fatalf("recipient = %q, want 5511999990000", composed.Recipient)
	}
	if composed.URL != "https://wa.me/5511999990000?text="+wantMessage {
		t.Fatalf("unexpected URL: %q", composed.URL)
	}
}

func TestComposeMultipleLinesKeepCartOrder(t *testing.T) {
	var c cart.Cart
	c.Add(models.MenuItem{ID: "4", Name: "Margherita Pizza", Price: 1899})
	c.Add(models.MenuItem{ID: "7", Name: "Coca Cola", Price: 399})
	c.Add(models.MenuItem{ID: "7", Name: "Coca Cola", Price: 399})
	c.Add(models.MenuItem{ID: "10", Name: "Chocolate Cake", Price: 799})

	composed := Compose(NewOrder(&c, models.CustomerInfo{
		Name:          "Bruno",
		Address:       "Av. Central, 200",
		PaymentMethod: "Credit Card",
		PhoneNumber:   "5511888887777",
	}))

	pizzaIdx := strings.Index(composed.Message, "• 1x Margherita Pizza - $18.99")
	colaIdx := strings.Index(composed.Message, "• 2x Coca Cola - $7.98")
	cakeIdx := strings.Index(composed.Message, "• 1x Chocolate Cake - $7.99")

	if pizzaIdx == -1 || colaIdx == -1 || cakeIdx == -1 {
		t.Fatalf("missing item lines in message: %q", composed.Message)
	}
	if !(pizzaIdx < colaIdx && colaIdx < cakeIdx) {
		t.Fatal("item lines are not in cart order")
	}
	if !strings.Contains(composed.Message, "*Total: $34.96*") {
		t.Fatalf("missing total line in message: %q", composed.Message)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	var c cart.Cart
	c.Add(models.MenuItem{ID: "5", Name: "Pepperoni Pizza", Price: 2299})
	c.Add(models.MenuItem{ID: "8", Name: "Fresh Orange Juice", Price: 599})

	info := models.CustomerInfo{
		Name:          "Carla",
		Address:       "Rua das Flores, 7",
		PaymentMethod: "Cash on Delivery",
		PhoneNumber:   "+55 (21) 98888-1234",
	}

	first := Compose(NewOrder(&c, info))
	second := Compose(NewOrder(&c, info))

	if first != second {
		t.Fatalf("composition is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComposeDisplaysRawPhone(t *testing.T) {
	var c cart.Cart
	c.Add(models.MenuItem{ID: "7", Name: "Coca Cola", Price: 399})

	composed := Compose(NewOrder(&c, models.CustomerInfo{
		Name:          "Dani",
		Address:       "Rua Y, 42",
		PaymentMethod: "Debit Card",
		PhoneNumber:   "+55 (11) 97777-0001",
	}))

	// Body keeps what the customer typed; only the URL path is stripped.
	if !strings.Contains(composed.Message, "📱 *Phone:* +55 (11) 97777-0001%0A") {
		t.Fatalf("message does not show the raw phone: %q", composed.Message)
	}
	if !strings.HasPrefix(composed.URL, "https://wa.me/5511977770001?text=") {
		t.Fatalf("URL recipient not stripped to digits: %q", composed.URL)
	}
}

func TestStripNonDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "+55 11 99999-0000", want: "5511999990000"},
		{input: "5511999990000", want: "5511999990000"},
		{input: "(11) 2222-3333", want: "1122223333"},
		{input: "no digits", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		if got := stripNonDigits(tt.input); got != tt.want {
			t.Errorf("stripNonDigits(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewOrderSnapshotsCart(t *testing.T) {
	var c cart.Cart
	c.Add(models.MenuItem{ID: "1", Name: "Classic Burger", Price: 1299})

	ord := NewOrder(&c, models.CustomerInfo{Name: "Ana"})

	// Mutating the cart after the snapshot must not change the order.
	c.Add(models.MenuItem{ID: "7", Name: "Coca Cola", Price: 399})

	if len(ord.Lines) != 1 {
		t.Fatalf("order lines = %d, want 1", len(ord.Lines))
	}
	if ord.Total != 1299 {
		t.Fatalf("order total = %v, want 1299", ord.Total)
	}
}
