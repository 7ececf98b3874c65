package rights_test

import (
	"errors"
	"testing"

	rights "github.com/idmops/resultant-rights"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  string
		want rights.Identifier
		err  error
	}{
		{
			name: "guid literal",
			raw:  "7fb2b853-24f0-4498-9534-4e10589723c4",
			sep:  ":",
			want: rights.Identifier{Kind: rights.KindGUID},
		},
		{
			name: "bare account",
			raw:  "alice",
			sep:  ":",
			want: rights.Identifier{Kind: rights.KindAccount, Account: "alice"},
		},
		{
			name: "domain qualified account",
			raw:  `CONTOSO\alice`,
			sep:  ":",
			want: rights.Identifier{Kind: rights.KindAccount, Domain: "CONTOSO", Account: "alice"},
		},
		{
			name: "attribute triplet",
			raw:  "Person:AccountName:bob",
			sep:  ":",
			want: rights.Identifier{Kind: rights.KindTriplet, ObjectType: "Person", Attribute: "AccountName", Value: "bob"},
		},
		{
			name: "custom separator",
			raw:  "Group|DisplayName|All Employees",
			sep:  "|",
			want: rights.Identifier{Kind: rights.KindTriplet, ObjectType: "Group", Attribute: "DisplayName", Value: "All Employees"},
		},
		{
			name: "empty string",
			raw:  "",
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
		{
			name: "two separator parts",
			raw:  "Person:bob",
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
		{
			name: "four separator parts",
			raw:  "Person:AccountName:bob:extra",
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
		{
			name: "triplet with empty part",
			raw:  "Person::bob",
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
		{
			name: "double backslash",
			raw:  `CONTOSO\sub\alice`,
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
		{
			name: "empty domain prefix",
			raw:  `\alice`,
			sep:  ":",
			err:  rights.ErrUnrecognizedIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rights.ParseIdentifier(tt.raw, tt.sep)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("ParseIdentifier(%q) error = %v, want %v", tt.raw, err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIdentifier(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want.Kind)
			}
			if got.Domain != tt.want.Domain || got.Account != tt.want.Account {
				t.Errorf("account parts = (%q, %q), want (%q, %q)", got.Domain, got.Account, tt.want.Domain, tt.want.Account)
			}
			if got.ObjectType != tt.want.ObjectType || got.Attribute != tt.want.Attribute || got.Value != tt.want.Value {
				t.Errorf("triplet parts = (%q, %q, %q), want (%q, %q, %q)",
					got.ObjectType, got.Attribute, got.Value, tt.want.ObjectType, tt.want.Attribute, tt.want.Value)
			}
		})
	}
}

func TestParseIdentifier_GUIDRoundTrip(t *testing.T) {
	id, err := rights.ParseIdentifier("7fb2b853-24f0-4498-9534-4e10589723c4", ":")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.GUID.String() != "7fb2b853-24f0-4498-9534-4e10589723c4" {
		t.Errorf("GUID = %s, want the literal back", id.GUID)
	}
}
