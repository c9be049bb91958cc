package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("LIFELINE_TEST_INT", "abc")
	if got := Int("LIFELINE_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int: got=%d want=7", got)
	}
	t.Setenv("LIFELINE_TEST_INT", " 42 ")
	if got := Int("LIFELINE_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("Int: got=%d want=42", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"yes": true, "off": false, "TRUE": true, "maybe": true}
	for raw, want := range cases {
		t.Setenv("LIFELINE_TEST_BOOL", raw)
		if got := Bool("LIFELINE_TEST_BOOL", true, nil); got != want {
			t.Fatalf("Bool(%q): got=%v want=%v", raw, got, want)
		}
	}
}

func TestSecondsAndList(t *testing.T) {
	t.Setenv("LIFELINE_TEST_TTL", "90")
	if got := Seconds("LIFELINE_TEST_TTL", time.Hour, nil); got != 90*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
	t.Setenv("LIFELINE_TEST_LIST", "a, ,b,")
	if got := List("LIFELINE_TEST_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List: got=%v", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("LIFELINE_TEST_FLOAT", "0.25")
	if got := Float("LIFELINE_TEST_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
	t.Setenv("LIFELINE_TEST_FLOAT", "half")
	if got := Float("LIFELINE_TEST_FLOAT", 1, nil); got != 1 {
		t.Fatalf("Float fallback: got=%v", got)
	}
}
