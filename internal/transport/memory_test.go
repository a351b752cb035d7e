package transport

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMemoryDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewMemory()
	var order []string
	sub := func(tag string) Handler {
		return func([]byte) { order = append(order, tag) }
	}
	if _, err := bus.Listen("ch", sub("first")); err != nil {
		t.Fatalf("listen: %v", err)
	}
	if _, err := bus.Listen("ch", sub("second")); err != nil {
		t.Fatalf("listen: %v", err)
	}

	if err := bus.Emit("ch", "x"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected delivery order %v", order)
	}
}

func TestMemoryPayloadRoundTripsThroughJSON(t *testing.T) {
	bus := NewMemory()
	type payload struct {
		Origin string `json:"origin"`
		N      int    `json:"n"`
	}
	var got payload
	if _, err := bus.Listen("ch", func(data []byte) {
		if err := json.Unmarshal(data, &got); err != nil {
			t.Errorf("unmarshal: %v", err)
		}
	}); err != nil {
		t.Fatalf("listen: %v", err)
	}

	if err := bus.Emit("ch", payload{Origin: "win-a", N: 7}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got.Origin != "win-a" || got.N != 7 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemory()
	count := 0
	unsub, err := bus.Listen("ch", func([]byte) { count++ })
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	if err := bus.Emit("ch", 1); err != nil {
		t.Fatalf("emit: %v", err)
	}
	unsub()
	unsub() // double teardown must be safe
	if err := bus.Emit("ch", 2); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
}

func TestMemorySurvivesPanickingHandler(t *testing.T) {
	bus := NewMemory()
	if _, err := bus.Listen("ch", func([]byte) { panic("handler bug") }); err != nil {
		t.Fatalf("listen: %v", err)
	}
	delivered := false
	if _, err := bus.Listen("ch", func([]byte) { delivered = true }); err != nil {
		t.Fatalf("listen: %v", err)
	}

	if err := bus.Emit("ch", "x"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !delivered {
		t.Fatal("expected delivery to continue past a panicking handler")
	}
}

func TestNoopBusNeverFails(t *testing.T) {
	bus := Noop()
	unsub, err := bus.Listen("ch", func([]byte) { t.Fatal("noop bus must never deliver") })
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := bus.Emit("ch", "ignored"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	unsub()
	if err := bus.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestConnectDegradesWithoutAddress(t *testing.T) {
	bus := Connect("", "ns")
	if _, ok := bus.(noopBus); !ok {
		t.Fatalf("expected noop degradation, got %T", bus)
	}
}

func TestWindowLabel(t *testing.T) {
	if got := WindowLabel("win-7"); got != "win-7" {
		t.Fatalf("expected configured label to win, got %q", got)
	}
	t.Setenv(envWindowLabel, "win-env")
	if got := WindowLabel(""); got != "win-env" {
		t.Fatalf("expected env label, got %q", got)
	}
	t.Setenv(envWindowLabel, "")
	generated := WindowLabel("")
	if !strings.HasPrefix(generated, "win-") || len(generated) <= len("win-") {
		t.Fatalf("expected generated label, got %q", generated)
	}
}

func TestNamespaceIsStablePerRoot(t *testing.T) {
	a := Namespace("/proj/a")
	if a != Namespace("/proj/a") {
		t.Fatal("expected namespace to be deterministic")
	}
	if a == Namespace("/proj/b") {
		t.Fatal("expected different roots to get different namespaces")
	}
	if !strings.HasPrefix(a, "winsync:") {
		t.Fatalf("unexpected namespace format %q", a)
	}
}
