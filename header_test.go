package ofximport_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofximport"
)

type FakeReader struct {
	err error
}

func (f FakeReader) Read(p []byte) (int, error) {
	return 0, f.err
}

const sgmlHeader = "OFXHEADER:100\r\nDATA:OFXSGML\r\nVERSION:102\r\nSECURITY:NONE\r\nENCODING:USASCII\r\nCHARSET:1252\r\nCOMPRESSION:NONE\r\nOLDFILEUID:NONE\r\nNEWFILEUID:NONE\r\n\r\n"

var _ = Describe("ofximport", func() {
	Describe("SplitHeader()", func() {
		It("should parse OFX 1.x header lines", func() {
			header, body := ofximport.SplitHeader([]byte(sgmlHeader + "<OFX></OFX>"))
			Expect(header).To(HaveKeyWithValue("OFXHEADER", "100"))
			Expect(header).To(HaveKeyWithValue("DATA", "OFXSGML"))
			Expect(header).To(HaveKeyWithValue("VERSION", "102"))
			Expect(header).To(HaveKeyWithValue("CHARSET", "1252"))
			Expect(header).To(HaveLen(9))
			Expect(string(body)).To(Equal("<OFX></OFX>"))
		})
		It("should return no header for OFX 2.x documents", func() {
			header, body := ofximport.SplitHeader([]byte(bankStatementXML))
			Expect(header).To(BeEmpty())
			Expect(string(body)).To(Equal(bankStatementXML))
		})
		It("should return no body for data without markup", func() {
			header, body := ofximport.SplitHeader([]byte("OFXHEADER:100\n"))
			Expect(header).To(HaveKeyWithValue("OFXHEADER", "100"))
			Expect(body).To(BeEmpty())
		})
		It("should strip the header", func() {
			Expect(string(ofximport.StripHeader([]byte(sgmlHeader + "<OFX>")))).To(Equal("<OFX>"))
		})
	})
	Describe("ReadDocument()", func() {
		Context("when the reader fails", func() {
			It("should return an error", func() {
				doc, err := ofximport.ReadDocument(FakeReader{err: errors.New("fake reader test error")})
				Expect(err).To(MatchError("fake reader test error"))
				Expect(doc).To(BeNil())
			})
		})
		Context("when given an OFX 1.x document", func() {
			It("should decode the declared charset", func() {
				data := sgmlHeader + "<OFX><STMTTRN><NAME>CAF\xc9 \x80<MEMO>x</STMTTRN></OFX>"
				doc, err := ofximport.ReadDocument(strings.NewReader(data))
				Expect(err).To(BeNil())
				Expect(doc.Header).To(HaveKeyWithValue("ENCODING", "USASCII"))
				Expect(doc.Markup).To(HavePrefix("<OFX>"))
				Expect(ofximport.AsText(doc.Tree(ofximport.GetTreeBuilder()), "name")).To(Equal("CAFÉ €"))
			})
			It("should leave UTF-8 documents alone", func() {
				data := "OFXHEADER:100\nENCODING:UTF-8\nCHARSET:1252\n\n<OFX><NAME>CAFÉ</OFX>"
				doc, err := ofximport.ReadDocument(strings.NewReader(data))
				Expect(err).To(BeNil())
				Expect(doc.Markup).To(Equal("<OFX><NAME>CAFÉ</OFX>"))
			})
		})
		Context("when given an OFX 2.x document", func() {
			It("should parse through the XML declaration", func() {
				doc, err := ofximport.ReadDocument(strings.NewReader(bankStatementXML))
				Expect(err).To(BeNil())
				root := doc.Tree(ofximport.NewTreeBuilder())
				Expect(ofximport.FindCurrency(root, "USD")).To(Equal("EUR"))
			})
			It("should decode a declared XML encoding", func() {
				data := `<?xml version="1.0" encoding="ISO-8859-1"?><OFX><NAME>CAF` + "\xc9" + `</NAME></OFX>`
				doc, err := ofximport.ReadDocument(strings.NewReader(data))
				Expect(err).To(BeNil())
				Expect(ofximport.AsText(doc.Tree(ofximport.NewTreeBuilder()), "name")).To(Equal("CAFÉ"))
			})
		})
		Context("when given an empty document", func() {
			It("should return an empty tree", func() {
				doc, err := ofximport.ReadDocument(strings.NewReader(""))
				Expect(err).To(BeNil())
				Expect(doc.Tree(ofximport.NewTreeBuilder()).IsEmpty()).To(BeTrue())
			})
		})
	})
})
