package command

import (
	"time"

	"github.com/aphistic/sweet"
	. "github.com/onsi/gomega"
)

type OptionsSuite struct{}

func (s *OptionsSuite) TestApplyEmpty(t sweet.T) {
	Expect(Apply(nil)).To(Equal(Modifiers{}))
}

func (s *OptionsSuite) TestApplySetsModifiers(t sweet.T) {
	m := Apply([]Option{
		EX(Duration(time.Minute)),
		PXAT(Raw(5)),
		NX(),
		Ver(2),
		Abs(8),
		Flags(3),
		Min(-1),
		Max(10),
		NoActive(),
		NoNegative(),
		WithVersion(),
		WithFlags(),
		Match("a*"),
		Count(20),
	})

	Expect(m.EX.Seconds()).To(Equal(int64(60)))
	Expect(m.EXAT).To(BeNil())
	Expect(m.PX).To(BeNil())
	Expect(m.PXAT.Milliseconds()).To(Equal(int64(5)))
	Expect(m.NX).To(BeTrue())
	Expect(m.XX).To(BeFalse())
	Expect(*m.Ver).To(Equal(int64(2)))
	Expect(*m.Abs).To(Equal(int64(8)))
	Expect(*m.Flags).To(Equal(uint32(3)))
	Expect(m.Min).To(Equal(int64(-1)))
	Expect(m.Max).To(Equal(int64(10)))
	Expect(m.NoActive).To(BeTrue())
	Expect(m.NoNegative).To(BeTrue())
	Expect(m.WithVersion).To(BeTrue())
	Expect(m.WithFlags).To(BeTrue())
	Expect(*m.Match).To(Equal("a*"))
	Expect(*m.Count).To(Equal(int64(20)))
}

func (s *OptionsSuite) TestApplyLastWins(t sweet.T) {
	m := Apply([]Option{Ver(1), Ver(4), MinFloat(0.5), MinFloat(1.5)})
	Expect(*m.Ver).To(Equal(int64(4)))
	Expect(m.Min).To(Equal(1.5))
}

func (s *OptionsSuite) TestOptionsDoNotAlias(t sweet.T) {
	opt := Ver(1)
	m1 := Apply([]Option{opt})
	m2 := Apply([]Option{opt})
	*m1.Ver = 99
	Expect(*m2.Ver).To(Equal(int64(1)))
}
