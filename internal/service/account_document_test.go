//go:build unit

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	standaloneHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

	fullAccountXML = standaloneHeader +
		`<account id="acct-1"><accountStatus>OK</accountStatus>` +
		`<devices><device deviceid="A1"><name>Kitchen</name><ipaddress>10.0.0.2</ipaddress></device></devices>` +
		`<mode>global</mode><preferredLanguage>en</preferredLanguage><providerSettings/>` +
		`<sources><source id="7" type="Audio"><createdOn>2018-11-27T18:20:01.000+00:00</createdOn>` +
		`<credential type="token_version_3">old &amp; stale</credential><name>u1</name>` +
		`<sourceproviderid>15</sourceproviderid><sourcename>u1@example.com</sourcename><sourceSettings/>` +
		`<username>u1</username></source></sources></account>`
)

func TestAccountDocument_RoundTripIsByteExact(t *testing.T) {
	doc := mustParseAccount(t, fullAccountXML)
	require.Equal(t, fullAccountXML, string(doc.Bytes()))
	require.Equal(t, "old & stale", doc.Sources()[0].Credential().Value())
}

func TestAccountDocument_PreservesWhitespaceAndOrder(t *testing.T) {
	in := standaloneHeader + "<account id=\"x\">\n  <b>1</b>\n  <a>2</a>\n</account>"
	doc := mustParseAccount(t, in)
	require.Equal(t, in, string(doc.Bytes()))
}

func TestAccountDocument_DeclarationIsNormalized(t *testing.T) {
	doc := mustParseAccount(t, "<?xml version=\"1.0\"?>\n<!-- cached -->\n<account id=\"x\"/>")
	require.Equal(t, standaloneHeader+`<account id="x"/>`, string(doc.Bytes()))
}

func TestAccountDocument_TrailingWhitespaceIsAccepted(t *testing.T) {
	doc := mustParseAccount(t, standaloneHeader+"<account id=\"x\"/>\r\n")
	require.Equal(t, "x", doc.ID())
	require.Equal(t, standaloneHeader+`<account id="x"/>`, string(doc.Bytes()))
}

func TestAccountDocument_DeclaredCharset(t *testing.T) {
	// "é" in ISO-8859-1 is 0xE9
	in := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><account><sources><source id=\"1\">" +
		"<username>caf\xe9</username></source></sources></account>"
	doc := mustParseAccount(t, in)
	require.Equal(t, "café", doc.Sources()[0].Username())
	require.Equal(t, standaloneHeader+`<account><sources><source id="1"><username>café</username></source></sources></account>`,
		string(doc.Bytes()))
}

func TestParseAccountDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "only_declaration", in: standaloneHeader},
		{name: "unclosed", in: "<invalid>not complete"},
		{name: "mismatched", in: "<account><b></account></b>"},
		{name: "two_roots", in: "<account/><account/>"},
		{name: "text_outside_root", in: "hello<account/>"},
		{name: "not_xml", in: "{\"json\":true}"},
		{name: "wrong_root", in: "<html><body/></html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccountDocument([]byte(tt.in))
			require.Error(t, err)
		})
	}
}

func TestAccountDocument_CloneIsDeep(t *testing.T) {
	doc := mustParseAccount(t, fullAccountXML)

	cp := doc.Clone()
	cp.Sources()[0].Credential().SetValue("new")

	require.Equal(t, "old & stale", doc.Sources()[0].Credential().Value())
	require.Equal(t, "token_version_3", doc.Sources()[0].Credential().Type())
	require.Equal(t, fullAccountXML, string(doc.Bytes()))
	require.Contains(t, string(cp.Bytes()), `<credential type="token_version_3">new</credential>`)
}
