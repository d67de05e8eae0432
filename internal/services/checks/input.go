package checks

import (
	"github.com/upwatch/upwatch/internal/domain/check"
	"github.com/upwatch/upwatch/internal/validate"
)

// CreateInput carries the five check fields, each already classified by the
// validator. Create requires all of them to be Valid.
type CreateInput struct {
	Protocol       validate.Field[check.Protocol]
	URL            validate.Field[string]
	Method         validate.Field[string]
	SuccessCodes   validate.Field[[]int]
	TimeoutSeconds validate.Field[int]
}

func ParseCreateInput(body map[string]any) CreateInput {
	return CreateInput{
		Protocol:       validate.Protocol(body["protocol"]),
		URL:            validate.URL(body["url"]),
		Method:         validate.Method(body["method"]),
		SuccessCodes:   validate.SuccessCodes(body["successCodes"]),
		TimeoutSeconds: validate.TimeoutSeconds(body["timeoutSeconds"]),
	}
}

func (in CreateInput) complete() bool {
	return in.Protocol.Ok() && in.URL.Ok() && in.Method.Ok() &&
		in.SuccessCodes.Ok() && in.TimeoutSeconds.Ok()
}

// ModifyInput carries the check id plus any subset of the five fields.
// Fields that did not validate are ignored; at least one must be Valid.
type ModifyInput struct {
	ID             validate.Field[string]
	Protocol       validate.Field[check.Protocol]
	URL            validate.Field[string]
	Method         validate.Field[string]
	SuccessCodes   validate.Field[[]int]
	TimeoutSeconds validate.Field[int]
}

func ParseModifyInput(body map[string]any) ModifyInput {
	return ModifyInput{
		ID:             validate.CheckID(body["id"]),
		Protocol:       validate.Protocol(body["protocol"]),
		URL:            validate.URL(body["url"]),
		Method:         validate.Method(body["method"]),
		SuccessCodes:   validate.SuccessCodes(body["successCodes"]),
		TimeoutSeconds: validate.TimeoutSeconds(body["timeoutSeconds"]),
	}
}

func (in ModifyInput) validFields() int {
	n := 0
	for _, ok := range []bool{
		in.Protocol.Ok(), in.URL.Ok(), in.Method.Ok(),
		in.SuccessCodes.Ok(), in.TimeoutSeconds.Ok(),
	} {
		if ok {
			n++
		}
	}
	return n
}

// apply copies every Valid field onto c, each one to its own field.
func (in ModifyInput) apply(c *check.Check) {
	if in.Protocol.Ok() {
		c.Protocol = in.Protocol.Value
	}
	if in.URL.Ok() {
		c.URL = in.URL.Value
	}
	if in.Method.Ok() {
		c.Method = in.Method.Value
	}
	if in.SuccessCodes.Ok() {
		c.SuccessCodes = in.SuccessCodes.Value
	}
	if in.TimeoutSeconds.Ok() {
		c.TimeoutSeconds = in.TimeoutSeconds.Value
	}
}
