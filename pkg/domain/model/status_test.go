package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

func TestStatusMessage(t *testing.T) {
	gt.Bool(t, model.StatusMessage{}.IsEmpty()).True()

	info := model.InfoStatus("saved")
	gt.Bool(t, info.IsError).False()
	gt.Bool(t, info.IsEmpty()).False()

	failure := model.ErrorStatus("too long")
	gt.Bool(t, failure.IsError).True()
	gt.Value(t, failure.Text).Equal("too long")
}
