// Package ldapfetch retrieves JNDI payload attributes from an LDAP
// entry, the way a vulnerable client would be made to.
package ldapfetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

const (
	attrSerializedData = "javaSerializedData"
	attrCodeBase       = "javaCodeBase"
	attrFactory        = "javaFactory"
)

// Payload is what a JNDI style entry served back: either the
// serialized object itself or the location of a remote factory class.
type Payload struct {
	SerializedData []byte
	CodeBase       string
	Factory        string
}

// Remote reports whether the entry points at a remote factory class
// instead of carrying the object inline.
func (p *Payload) Remote() bool {
	return len(p.SerializedData) == 0 && p.CodeBase != "" && p.Factory != ""
}

// ClassURL resolves the factory class name against the codebase.
func (p *Payload) ClassURL() string {
	return fmt.Sprintf("%s%s.class", p.CodeBase, strings.ReplaceAll(p.Factory, ".", "/"))
}

// FetchClass downloads the factory class of a remote payload.
func (p *Payload) FetchClass() ([]byte, error) {
	resp, err := http.Get(p.ClassURL())
	if err != nil {
		return nil, fmt.Errorf("fetching factory class: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching factory class %s: HTTP %d", p.ClassURL(), resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Fetch binds anonymously to the server in rawURL, in the form
// ldap://host[:port]/name, and returns the payload attributes of the
// named entry.
func Fetch(rawURL string) (*Payload, error) {
	name, dialURL, err := splitURL(rawURL)
	if err != nil {
		return nil, err
	}

	conn, err := ldap.DialURL(dialURL)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", dialURL, err)
	}
	defer conn.Close()

	if _, err := conn.SimpleBind(&ldap.SimpleBindRequest{AllowEmptyPassword: true}); err != nil {
		return nil, fmt.Errorf("anonymous bind: %w", err)
	}

	res, err := conn.Search(ldap.NewSearchRequest(
		name, ldap.ScopeBaseObject, ldap.DerefAlways,
		0, 0, false, "(objectClass=*)", nil, nil,
	))
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", name, err)
	}

	for _, entry := range res.Entries {
		payload := &Payload{
			CodeBase: entry.GetAttributeValue(attrCodeBase),
			Factory:  entry.GetAttributeValue(attrFactory),
		}
		if raw := entry.GetRawAttributeValue(attrSerializedData); len(raw) > 0 {
			payload.SerializedData = raw
		}
		if len(payload.SerializedData) > 0 || payload.Remote() {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("no payload attributes on %q", name)
}

func splitURL(rawURL string) (name, dialURL string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid ldap url: %w", err)
	}
	if u.Scheme != "ldap" && u.Scheme != "ldaps" {
		return "", "", fmt.Errorf("invalid ldap url %q: scheme must be ldap or ldaps", rawURL)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("invalid ldap url %q: missing host", rawURL)
	}
	return strings.TrimPrefix(u.Path, "/"), u.Scheme + "://" + u.Host, nil
}
