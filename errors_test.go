package vecscore

import (
	"errors"
	"fmt"
	"testing"
)

func ExampleError() {
	fmt.Println(&Error{
		Kind:    ErrInternal,
		Message: "test",
		Op:      "ExampleError",
	})

	inner := errors.New("malformed vector")
	fmt.Println(&Error{
		Inner:   inner,
		Kind:    ErrInvalid,
		Message: "unable to score",
		Op:      "ScoreRow",
	})
	fmt.Println(fmt.Errorf("libscore: %w", &Error{
		Inner:   inner,
		Kind:    ErrUnresolvable,
		Message: "no vector",
		Op:      "Resolve",
	}))
	fmt.Println(&Error{Inner: inner, Kind: ErrPrecondition})

	// Output:
	// ExampleError [internal]: test
	// ScoreRow [invalid]: unable to score: malformed vector
	// libscore: Resolve [unresolvable]: no vector: malformed vector
	// malformed vector
}

func TestKind(t *testing.T) {
	sentinel := errors.New("sentinel")
	tt := []struct {
		Name string
		Err  error
		Kind ErrorKind
		Not  []ErrorKind
	}{
		{
			Name: "Direct",
			Err:  &Error{Inner: sentinel, Kind: ErrInvalid},
			Kind: ErrInvalid,
			Not:  []ErrorKind{ErrInternal, ErrUnresolvable, ErrPrecondition},
		},
		{
			Name: "Wrapped",
			Err:  fmt.Errorf("outer: %w", &Error{Inner: sentinel, Kind: ErrUnresolvable}),
			Kind: ErrUnresolvable,
			Not:  []ErrorKind{ErrInvalid, ErrInternal},
		},
		{
			Name: "Nested",
			Err: &Error{
				Kind:  ErrInternal,
				Inner: &Error{Inner: sentinel, Kind: ErrInvalid},
			},
			Kind: ErrInternal,
			Not:  []ErrorKind{ErrPrecondition},
		},
	}
	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			t.Log(tc.Err)
			if !errors.Is(tc.Err, tc.Kind) {
				t.Errorf("expected kind %q", tc.Kind)
			}
			for _, k := range tc.Not {
				if errors.Is(tc.Err, k) {
					t.Errorf("unexpected kind %q", k)
				}
			}
			if !errors.Is(tc.Err, sentinel) {
				t.Error("inner error lost")
			}
		})
	}
}
