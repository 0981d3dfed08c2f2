package pbtk_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPBTK(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PBTK Suite")
}
