package impact

import (
	"domainimpact/pkg/domain"

	"github.com/go-faster/jx"
)

// Matrix field names expected by the job fan-out consumer.
const (
	matrixInclude       = "include"
	matrixDomain        = "domain"
	matrixReleaseConfig = "release-config"
)

// Shape encodes impacted domains into the step outputs. The JSON is compact
// and its key order fixed, so equal inputs always produce equal bytes.
func Shape(impacted []domain.ImpactedDomain) domain.Outputs {
	return domain.Outputs{
		HasChanges: len(impacted) > 0,
		Domains:    EncodeDomains(impacted),
		Matrix:     EncodeMatrix(impacted),
	}
}

// EncodeDomains returns a JSON array of the impacted domain names.
func EncodeDomains(impacted []domain.ImpactedDomain) string {
	var e jx.Encoder
	e.ArrStart()
	for _, d := range impacted {
		e.Str(d.ReleaseName)
	}
	e.ArrEnd()

	return e.String()
}

// EncodeMatrix returns {"include":[{"domain":<name>,"release-config":<path>},...]}.
func EncodeMatrix(impacted []domain.ImpactedDomain) string {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart(matrixInclude)
	e.ArrStart()
	for _, d := range impacted {
		e.ObjStart()
		e.FieldStart(matrixDomain)
		e.Str(d.ReleaseName)
		e.FieldStart(matrixReleaseConfig)
		e.Str(d.ConfigPath)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()

	return e.String()
}
