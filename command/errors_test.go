package command

import (
	"errors"
	"fmt"

	"github.com/aphistic/sweet"
	"github.com/gomodule/redigo/redis"
	. "github.com/onsi/gomega"
)

type ErrorsSuite struct{}

func (s *ErrorsSuite) TestLocalErrorsAreInvalidArgument(t sweet.T) {
	Expect(errors.Is(ErrEmptyMapping, ErrInvalidArgument)).To(BeTrue())
	Expect(errors.Is(ErrNoFields, ErrInvalidArgument)).To(BeTrue())
	Expect(IsServerError(ErrEmptyMapping)).To(BeFalse())
}

func (s *ErrorsSuite) TestIsServerError(t sweet.T) {
	Expect(IsServerError(redis.Error("ERR unknown command"))).To(BeTrue())
	Expect(IsServerError(fmt.Errorf("exhset: %w", redis.Error("ERR")))).To(BeTrue())
	Expect(IsServerError(errors.New("ERR unknown command"))).To(BeFalse())
	Expect(IsServerError(nil)).To(BeFalse())
}

func (s *ErrorsSuite) TestClassifiers(t sweet.T) {
	var (
		stale      = redis.Error("ERR update version is stale")
		notInteger = redis.Error("ERR value is not an integer")
		notFloat   = redis.Error("ERR value is not an float")
		overflow   = redis.Error("ERR increment or decrement would overflow")
	)

	Expect(IsStaleVersion(stale)).To(BeTrue())
	Expect(IsStaleVersion(overflow)).To(BeFalse())
	Expect(IsNotInteger(notInteger)).To(BeTrue())
	Expect(IsNotFloat(notFloat)).To(BeTrue())
	Expect(IsOverflow(overflow)).To(BeTrue())
	Expect(IsOverflow(notInteger)).To(BeFalse())
}

func (s *ErrorsSuite) TestClassifiersIgnoreLocalErrors(t sweet.T) {
	Expect(IsStaleVersion(errors.New("update version is stale"))).To(BeFalse())
}
