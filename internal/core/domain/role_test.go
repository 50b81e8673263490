package domain

import "testing"

func TestRole_AtLeast_Monotonic(t *testing.T) {
	roles := []Role{RoleUser, RoleManager, RoleAdmin}
	for _, held := range roles {
		for _, required := range roles {
			got := held.AtLeast(required)
			want := held >= required
			if got != want {
				t.Fatalf("AtLeast(%s, %s) = %v, want %v", held, required, got, want)
			}
		}
	}

	// a role grants everything a lower role grants
	for i, lower := range roles {
		for _, higher := range roles[i:] {
			for _, required := range roles {
				if lower.AtLeast(required) && !higher.AtLeast(required) {
					t.Fatalf("%s grants %s but %s does not", lower, required, higher)
				}
			}
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{"user": RoleUser, "manager": RoleManager, "admin": RoleAdmin}
	for name, want := range cases {
		got, err := ParseRole(name)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %v, want %v", name, got, want)
		}
		if got.String() != name {
			t.Fatalf("String() = %q, want %q", got.String(), name)
		}
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
