package javaserial

const (
	referenceClass = "javax.naming.Reference"
	refAddrClass   = "javax.naming.RefAddr"
	vectorClass    = "java.util.Vector"
)

// RefAddr is one address entry of a naming Reference.
type RefAddr struct {
	Type    string
	Content string
}

// Reference is a decoded javax.naming.Reference. A remote factory
// location on one of these is what turns a directory lookup into
// remote class loading.
type Reference struct {
	ClassName        string
	FactoryClassName string
	FactoryLocation  string
	Addrs            []RefAddr
}

// AsReference extracts a Reference from a decoded value. It reports
// false when the value is not an instance of javax.naming.Reference
// (subclasses such as LinkRef count).
func AsReference(v any) (*Reference, bool) {
	obj, ok := v.(*Object)
	if !ok || !obj.InstanceOf(referenceClass) {
		return nil, false
	}
	ref := &Reference{
		ClassName:        stringField(obj, "className"),
		FactoryClassName: stringField(obj, "classFactory"),
		FactoryLocation:  stringField(obj, "classFactoryLocation"),
	}

	vec, ok := obj.Fields["addrs"].(*Object)
	if !ok || !vec.InstanceOf(vectorClass) {
		return ref, true
	}
	data, ok := vec.Fields["elementData"].(*Array)
	if !ok {
		return ref, true
	}
	// only elementCount entries of the backing array are live, the
	// rest is spare capacity
	count := len(data.Values)
	if n, ok := vec.Fields["elementCount"].(int32); ok && n >= 0 && int(n) < count {
		count = int(n)
	}
	for _, el := range data.Values[:count] {
		addr, ok := el.(*Object)
		if !ok || !addr.InstanceOf(refAddrClass) {
			continue
		}
		ref.Addrs = append(ref.Addrs, RefAddr{
			Type:    stringField(addr, "addrType"),
			Content: stringField(addr, "contents"),
		})
	}
	return ref, true
}

func stringField(o *Object, name string) string {
	s, _ := o.Fields[name].(string)
	return s
}
