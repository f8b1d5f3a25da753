package ofximport_test

import (
	"flag"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofximport"
)

var _ = Describe("ofximport", func() {
	Describe("GetTreeBuilder()", func() {
		It("should return the singleton instance.", func() {
			b1 := ofximport.GetTreeBuilder()
			b2 := ofximport.GetTreeBuilder()
			Expect(b1).NotTo(BeNil())
			Expect(b1).To(BeIdenticalTo(b2))
		})
	})
	Describe("Build()", func() {
		Context("when given unparsable data", func() {
			DescribeTable("should return an empty root", func(data string) {
				root := ofximport.NewTreeBuilder().Build([]byte(data))
				Expect(root).NotTo(BeNil())
				Expect(root.Name).To(BeEmpty())
				Expect(root.IsEmpty()).To(BeTrue())
			},
				Entry("when empty", ""),
				Entry("when only whitespace", " \n\t "),
				Entry("when containing malformed tokens", `<OFX>>CODE<</OFX>`),
				Entry("when a tag is never finished", `<OFX><STMTTRN`),
			)
		})
		Context("when given OFX markup", func() {
			DescribeTable("should repair it into a tree", func(data, expected string) {
				root := ofximport.NewTreeBuilder().Build([]byte(data))
				Expect(root.String()).To(Equal(expected))
			},
				Entry("when aggregate is well formed",
					`<OFX><SIGNONMSGSRSV1>	</SIGNONMSGSRSV1></OFX>`,
					`<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>`),
				Entry("when aggregate is missing end tags",
					`<OFX><SIGNONMSGSRSV1></OFX>`,
					`<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>`),
				Entry("when aggregate is missing start tags",
					`<OFX></SIGNONMSGSRSV1></OFX>`,
					`<OFX></OFX>`),
				Entry("when element is missing end tags",
					`<OFX>
							<STATUS>
							<CODE>0
							<SEVERITY>INFO
							</STATUS>
							<DTSERVER>20191027065402
							<LANGUAGE>ENG
							</OFX>`,
					`<OFX><STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS><DTSERVER>20191027065402</DTSERVER><LANGUAGE>ENG</LANGUAGE></OFX>`),
				Entry("when element is missing starting tags",
					`<OFX>
							<BANKTRANLIST>
							2018-01-01</DTSTART>
							2018-06-30</DTEND>
							</BANKTRANLIST>
							</OFX>`,
					`<OFX><BANKTRANLIST><DTSTART>2018-01-01</DTSTART><DTEND>2018-06-30</DTEND></BANKTRANLIST></OFX>`),
				Entry("when aggregates have no nested elements",
					`<OFX><BANKMSGSRSV1></STMTTRNRS></BANKMSGSRSV1></OFX>`,
					`<OFX><BANKMSGSRSV1></BANKMSGSRSV1></OFX>`),
				Entry("when end tags of implicitly closed elements follow later",
					`<STMTTRN><TRNTYPE>DEBIT<TRNAMT>-1.5<NAME>A<MEMO>B</MEMO></NAME></TRNAMT></TRNTYPE></STMTTRN>`,
					`<STMTTRN><TRNTYPE>DEBIT</TRNTYPE><TRNAMT>-1.5</TRNAMT><NAME>A</NAME><MEMO>B</MEMO></STMTTRN>`),
				Entry("when tag case varies",
					`<ofx><StmtTrn><TrnAmt>1</TRNAMT></STMTTRN></Ofx>`,
					`<OFX><STMTTRN><TRNAMT>1</TRNAMT></STMTTRN></OFX>`),
				Entry("when an aggregate end tag closes several open aggregates",
					`<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS><CURDEF>USD</OFX><OTHER>x`,
					`<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS><CURDEF>USD</CURDEF></STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX><OTHER>x</OTHER>`),
				Entry("when an element has no value",
					`<STMTTRN><NAME><MEMO>x</STMTTRN>`,
					`<STMTTRN><NAME></NAME><MEMO>x</MEMO></STMTTRN>`),
				Entry("when an unknown tag has no value",
					`<STMTTRN><INTU.XID><MEMO>x</STMTTRN>`,
					`<STMTTRN><INTU.XID><MEMO>x</MEMO></INTU.XID></STMTTRN>`),
				Entry("when an aggregate holds stray text",
					`<OFX><STATUS>baz<SEVERITY>INFO</STATUS></OFX>`,
					`<OFX><STATUS><SEVERITY>INFO</SEVERITY></STATUS></OFX>`),
			)
		})
		Context("when tracing is enabled", func() {
			BeforeEach(func() {
				Expect(flag.Set("v", "3")).To(Succeed())
			})
			AfterEach(func() {
				Expect(flag.Set("v", "0")).To(Succeed())
			})
			It("should build the same tree", func() {
				root := ofximport.NewTreeBuilder().Build([]byte(`<OFX><STMTTRN><NAME>A &amp; B<MEMO>x</OFX>`))
				Expect(root.String()).To(Equal(`<OFX><STMTTRN><NAME>A &amp; B</NAME><MEMO>x</MEMO></STMTTRN></OFX>`))
			})
		})
		Context("when given text with entities", func() {
			It("should decode them", func() {
				root := ofximport.Parse(`<NAME>WHOLE &amp; FDS &lt;NY&gt; caf&eacute;</NAME>`)
				Expect(root.Children).To(HaveLen(1))
				Expect(root.Children[0].Text).To(Equal("WHOLE & FDS <NY> café"))
			})
			It("should keep bare ampersands", func() {
				root := ofximport.Parse(`<NAME>AT&T WIRELESS<MEMO>x`)
				Expect(root.Children[0].Text).To(Equal("AT&T WIRELESS"))
			})
		})
		Context("when given a nested statement", func() {
			It("should lower-case names and keep children in document order", func() {
				root := ofximport.Parse(multiAccountStatement)
				Expect(root.Children).To(HaveLen(1))
				ofx := root.Children[0]
				Expect(ofx.Name).To(Equal("ofx"))
				Expect(ofx.Children).To(HaveLen(2))
				Expect(ofx.Children[0].Name).To(Equal("signonmsgsrsv1"))
				Expect(ofx.Children[1].Name).To(Equal("creditcardmsgsrsv1"))
				trnrs := ofx.Children[1].Children
				Expect(trnrs).To(HaveLen(2))
				Expect(trnrs[0].Name).To(Equal("ccstmttrnrs"))
				Expect(trnrs[1].Name).To(Equal("stmttrnrs"))
			})
			It("should never give text to nodes with children", func() {
				root := ofximport.Parse(creditCardStatement)
				root.Walk(func(n *ofximport.Node) bool {
					if !n.IsLeaf() {
						Expect(n.Text).To(BeEmpty(), n.Name)
					}
					return true
				})
			})
		})
	})
})
