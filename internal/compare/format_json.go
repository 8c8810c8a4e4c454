package compare

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
)

// JSONFormatter formats a tenure ladder as JSON. Money is written as numbers
// rounded to 2 places, rates and yields as numbers with 4.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type jsonResult struct {
	TenureMonths         int               `json:"tenureMonths"`
	AnnualRatePercent    json.Number       `json:"annualRatePercent"`
	RateSource           domain.RateSource `json:"rateSource"`
	MaturityDate         dateutil.Date     `json:"maturityDate"`
	MaturityAmount       json.Number       `json:"maturityAmount"`
	Interest             json.Number       `json:"interest"`
	EffectiveYield       json.Number       `json:"effectiveYield"`
	InterestDiffFromBase json.Number       `json:"interestDiffFromBase"`
	InterestPctFromBase  json.Number       `json:"interestPctFromBase"`
	YieldDiffFromBase    json.Number       `json:"yieldDiffFromBase"`
	MonthsDiffFromBase   int               `json:"monthsDiffFromBase"`
}

type jsonSet struct {
	BaseTenure         int                       `json:"baseTenure"`
	Principal          json.Number               `json:"principal"`
	StartDate          dateutil.Date             `json:"startDate"`
	Convention         domain.InterestConvention `json:"interestType"`
	BaseResult         *jsonResult               `json:"baseResult"`
	AlternativeResults []jsonResult              `json:"alternativeResults"`
	Recommendations    []string                  `json:"recommendations"`
	SourcePath         string                    `json:"sourcePath,omitempty"`
}

func money(d decimal.Decimal) json.Number { return json.Number(d.StringFixed(2)) }
func ratio(d decimal.Decimal) json.Number { return json.Number(d.Round(4).String()) }

func toJSONResult(r *ComparisonResult) jsonResult {
	return jsonResult{
		TenureMonths:         r.TenureMonths,
		AnnualRatePercent:    ratio(r.AnnualRatePercent),
		RateSource:           r.RateSource,
		MaturityDate:         r.MaturityDate,
		MaturityAmount:       money(r.MaturityAmount),
		Interest:             money(r.Interest),
		EffectiveYield:       ratio(r.EffectiveYield),
		InterestDiffFromBase: money(r.InterestDiffFromBase),
		InterestPctFromBase:  ratio(r.InterestPctFromBase),
		YieldDiffFromBase:    ratio(r.YieldDiffFromBase),
		MonthsDiffFromBase:   r.MonthsDiffFromBase,
	}
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonSet{
		BaseTenure:         compSet.BaseTenure,
		Principal:          money(compSet.Principal),
		StartDate:          compSet.StartDate,
		Convention:         compSet.Convention,
		AlternativeResults: make([]jsonResult, 0, len(compSet.AlternativeResults)),
		Recommendations:    compSet.Recommendations,
		SourcePath:         compSet.SourcePath,
	}
	if compSet.BaseResult != nil {
		base := toJSONResult(compSet.BaseResult)
		doc.BaseResult = &base
	}
	for i := range compSet.AlternativeResults {
		doc.AlternativeResults = append(doc.AlternativeResults, toJSONResult(&compSet.AlternativeResults[i]))
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
