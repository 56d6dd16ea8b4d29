package extract

import (
	"regexp"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

// Rule is one pattern-based attempt to capture a field value. Group selects
// the capture group holding the value (1 for every current rule). Rules are
// tried in declaration order and the first non-empty capture wins, so order
// encodes priority: label-specific patterns first, format-only patterns last.
type Rule struct {
	re    *regexp.Regexp
	group int
}

// Pattern returns the source pattern, used to tag matches for debugging.
func (r Rule) Pattern() string {
	return r.re.String()
}

// FieldDef binds a field name to its ordered rule list and importance weight.
type FieldDef struct {
	Name   constants.FieldName
	Weight float64
	Rules  []Rule
}

func rule(pattern string) Rule {
	return Rule{re: regexp.MustCompile(pattern), group: 1}
}

// defaultWeight is used for any field name missing from the registry, so the
// weight table and the field set can evolve independently without crashing.
const defaultWeight = 0.5

// Registry is the ordered field table. Claim forms in this domain label
// fields in Korean, in English, or not at all (format only), so every field
// carries Korean-label rules, English-label rules, and format rules, in that
// order, to minimize false positives while keeping recall on noisy scans.
var Registry = []FieldDef{
	// Policyholder and insured information.
	{constants.PolicyownerName, 1.0, []Rule{
		rule(`(?i)(?:보험계약자\s*성명|Name of Policyowner|Contract Holder)[\s:：]*([가-힣A-Za-z\s]+)`),
		rule(`(?i)(?:계약자|Policyowner)[\s:：]*([가-힣A-Za-z\s]+)`),
	}},
	{constants.InsuredName, 1.0, []Rule{
		rule(`(?i)(?:피보험자\s*성명|Name of Insured|Insured Person)[\s:：]*([가-힣A-Za-z\s]+)`),
		rule(`(?i)(?:피보험자|Insured)[\s:：]*([가-힣A-Za-z\s]+)`),
	}},
	{constants.Occupation, 0.8, []Rule{
		rule(`(?i)(?:직업|Occupation|Job)[\s:：]*([가-힣A-Za-z\s]+)`),
		rule(`(?i)(?:직종|업무|Work)[\s:：]*([가-힣A-Za-z\s]+)`),
	}},
	{constants.HKIDPassport, 0.9, []Rule{
		rule(`(?i)(?:HKID|Passport|신분증번호|여권번호|ID Number)[\s:：]*([A-Za-z0-9()\s-]+)`),
		rule(`(?i)(?:신분증|여권|ID)[\s:：]*([A-Za-z0-9()\s-]+)`),
		rule(`([A-Z]{1,2}[0-9]{6,8}\([0-9A-Z]\))`),
	}},
	{constants.DateOfBirth, 0.8, []Rule{
		rule(`(?i)(?:생년월일|Date of Birth|Birth Date|DOB)[\s:：]*([0-9\s\-/.년월일]+)`),
		rule(`([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{4})`),
		rule(`([0-9]{4}[/\-.][0-9]{1,2}[/\-.][0-9]{1,2})`),
		rule(`([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{1,2})`),
	}},

	// Hospital information.
	{constants.HospitalName, 1.0, []Rule{
		rule(`(?i)(?:병원명|의료기관명|HOSPITAL NAME|Hospital)[\s:：]+([^\n\r]+)`),
		rule(`(?i)([\w\s]+(?:병원|의원|클리닉|센터|Hospital|Clinic|Center|Medical))`),
		rule(`([가-힣]+(?:대학교|종합|병원|의원|클리닉))`),
		rule(`(?i)(?:Hospital|Medical|Clinic|Healthcare)[\s:：]*([A-Za-z\s]+)`),
	}},
	{constants.HospitalID, 0.6, []Rule{
		rule(`(?i)(?:요양기관번호|기관번호|HOSPITAL ID)[\s:：]+([0-9]+)`),
		rule(`([0-9]{8,})`),
		rule(`(?i)(?:Branch code|Location|ID)[\s:：]*([0-9A-Za-z]+)`),
	}},
	{constants.HospitalAddress, 0.7, []Rule{
		rule(`(?i)(?:병원\s*주소|의료기관\s*주소|Hospital Address)[\s:：]*([^\n\r]+)`),
		rule(`(?i)(?:주소|Address)[\s:：]*([가-힣A-Za-z0-9\s,.-]+)`),
	}},

	// Patient information.
	{constants.PatientName, 1.0, []Rule{
		rule(`(?i)(?:환자명|환자성명|성\s*명|이\s*름|Patient|PATIENT NAME)[\s:：]*([가-힣A-Za-z\s]{2,})`),
		rule(`성명[\s:：]*([가-힣A-Za-z\s]+)`),
		rule(`(?i)(?:Patient Name|Name|Claimant)[\s:：]*([A-Za-z\s]+)`),
		rule(`(?i)(?:benefit|claim|patient)[\s:：]*([A-Za-z\s]+)`),
	}},
	{constants.PatientIDNumber, 0.9, []Rule{
		rule(`(?i)(?:주민등록번호|주민번호|ID NUMBER|등록번호)[\s:：]*([0-9*-]{13,})`),
		rule(`([0-9]{6}[-*][0-9*]{7})`),
		rule(`(?i)(?:Policy|Member|ID|Certificate)[\s:：]*([A-Za-z0-9-]+)`),
	}},

	// Contact information.
	{constants.Address, 0.7, []Rule{
		rule(`(?i)(?:주소|거주지|ADDRESS|Address)[\s:：]+([^\n\r]+)`),
		rule(`((?:서울|부산|대구|인천|광주|대전|울산|경기|강원|충북|충남|전북|전남|경북|경남|제주)[^\n\r]*)`),
		rule(`(?i)(?:Address|Location)[\s:：]*([A-Za-z0-9\s,.-]+)`),
	}},
	{constants.Phone, 0.7, []Rule{
		rule(`(?i)(?:전화번호|연락처|휴대폰|PHONE|Contact)[\s:：]*([0-9-]{10,})`),
		rule(`([0-9]{2,3}[-\s]?[0-9]{3,4}[-\s]?[0-9]{4})`),
		rule(`(?i)(?:Phone|Tel|Contact)[\s:：]*([0-9\s+()-]+)`),
	}},

	// Medical information.
	{constants.TreatmentDate, 0.9, []Rule{
		rule(`(?i)(?:진료일자?|내원일자?|수진일자?|방문일자?|TREATMENT DATE|Visit Date)[\s:：]*([0-9.\-/년월일\s]{8,})`),
		rule(`(20[0-9]{2}[.\-/\s]*[0-9]{1,2}[.\-/\s]*[0-9]{1,2})`),
		rule(`([0-9]{4}년[0-9]{1,2}월[0-9]{1,2}일)`),
		rule(`(?i)(?:Date|Treatment|Visit|Admission)[\s:：]*([0-9\s\-/.]+)`),
	}},
	{constants.Department, 0.8, []Rule{
		rule(`(?i)(?:진료과목?|진료과|과목|DEPARTMENT|Department)[\s:：]*([^\n\r]+)`),
		rule(`(정형외과|내과|외과|소아과|산부인과|이비인후과|피부과|안과|치과|신경과|정신과|가정의학과|응급의학과)`),
		rule(`(?i)(?:Department|Ward|Unit|Specialty)[\s:：]*([A-Za-z\s]+)`),
	}},
	{constants.DoctorName, 0.8, []Rule{
		rule(`(?i)(?:의사명|담당의|주치의|의료진|DOCTOR|Doctor|의사\s*성명)[\s:：]*([가-힣A-Za-z\s.]{2,})`),
		rule(`(?i)(?:Dr\.|Doctor|의사)\s*([가-힣A-Za-z\s.]+)`),
		rule(`(?i)(?:Doctor's Name|Physician)[\s:：]*([A-Za-z\s.]+)`),
	}},
	{constants.Diagnosis, 0.9, []Rule{
		rule(`(?i)(?:상병명|진단명|질병명|병명|DIAGNOSIS|Diagnosis)[\s:：]*([^\n\r]+)`),
		rule(`(?:진단|병명)[\s:：]*([^\n\r]+)`),
		rule(`(?i)(?:Diagnosis|Condition|Disease|Illness)[\s:：]*([A-Za-z\s]+)`),
	}},
	{constants.Treatment, 0.7, []Rule{
		rule(`(?i)(?:치료내용|처치내용|시술내용|TREATMENT|Treatment)[\s:：]*([^\n\r]+)`),
		rule(`(?:치료|처치|시술)[\s:：]*([^\n\r]+)`),
		rule(`(?i)(?:Treatment|Procedure|Surgery|Therapy)[\s:：]*([A-Za-z\s]+)`),
	}},
	{constants.Prescription, 0.5, []Rule{
		rule(`(?i)(?:처방내용|처방전|약물|PRESCRIPTION|Prescription)[\s:：]*([^\n\r]+)`),
		rule(`(?:처방|투약)[\s:：]*([^\n\r]+)`),
		rule(`(?i)(?:Prescription|Medication|Medicine|Drug)[\s:：]*([A-Za-z\s]+)`),
	}},

	// Financial information.
	{constants.TotalCost, 1.0, []Rule{
		rule(`(?i)(?:진료비\s*총액|총\s*진료비|진료비\s*합계|의료비\s*총액|TOTAL COST|Medical Fee)[\s:：]*([0-9,]+)(?:\s*원|KRW)?`),
		rule(`총액[\s:：]*([0-9,]+)`),
		rule(`([0-9,]+)\s*원(?:\s*총액)?`),
		rule(`(?i)(?:Total|Amount|Cost|Fee|Charge)[\s:：]*\$?([0-9,.]+)`),
	}},
	{constants.PatientPayment, 0.8, []Rule{
		rule(`(?i)(?:본인부담금|환자부담금?|개인부담|PATIENT PAYMENT|Co-payment)[\s:：]*([0-9,]+)(?:\s*원|KRW)?`),
		rule(`본인부담[\s:：]*([0-9,]+)`),
		rule(`부담금[\s:：]*([0-9,]+)`),
		rule(`(?i)(?:Deductible|Copay|Patient Pay|Out of Pocket)[\s:：]*\$?([0-9,.]+)`),
	}},
	{constants.InsuranceClaim, 0.9, []Rule{
		rule(`(?i)(?:보험청구액?|급여청구|보험급여|INSURANCE CLAIM|Insurance Amount)[\s:：]*([0-9,]+)(?:\s*원|KRW)?`),
		rule(`(?:보험|급여)[\s:：]*([0-9,]+)`),
		rule(`청구[\s:：]*([0-9,]+)`),
		rule(`(?i)(?:Claim|Coverage|Benefit|Reimbursement)[\s:：]*\$?([0-9,.]+)`),
	}},

	// Banking information.
	{constants.AccountHolderName, 0.9, []Rule{
		rule(`(?i)(?:예금주\s*성명|계좌명의인|Name of Account Holder|Account Name)[\s:：]*([가-힣A-Za-z\s]+)`),
		rule(`(?i)(?:예금주|계좌주|Account Holder)[\s:：]*([가-힣A-Za-z\s]+)`),
	}},
	{constants.Currency, 0.8, []Rule{
		rule(`(?i)(?:통화|Currency)[\s:：]*([A-Z]{3}|원|달러|엔|HKD|USD|KRW|JPY)`),
		rule(`(HKD|USD|KRW|JPY|EUR|GBP)`),
	}},
	{constants.BankName, 0.8, []Rule{
		rule(`(?i)(?:은행명|Bank Name|은행)[\s:：]*([가-힣A-Za-z\s]+(?:은행|Bank))`),
		rule(`(?i)(?:Bank|은행)[\s:：]*([가-힣A-Za-z\s]+)`),
	}},
	{constants.HKDBankAccount, 0.7, []Rule{
		rule(`(?i)(?:HKD\s*계좌번호|HKD Account|홍콩달러\s*계좌)[\s:：]*([0-9-]+)`),
		rule(`HKD[\s:：]*([0-9-]+)`),
	}},
	{constants.USDBankAccount, 0.7, []Rule{
		rule(`(?i)(?:USD\s*계좌번호|USD Account|달러\s*계좌)[\s:：]*([0-9-]+)`),
		rule(`USD[\s:：]*([0-9-]+)`),
	}},
	{constants.BankNumber, 0.6, []Rule{
		rule(`(?i)(?:은행번호|Bank No|Bank Code|SWIFT|BIC)[\s:：]*([A-Za-z0-9]+)`),
		rule(`(?i)(?:Bank No|은행코드)[\s:：]*([0-9]+)`),
	}},
	{constants.AccountNumber, 0.8, []Rule{
		rule(`(?i)(?:계좌번호|Account Number|Account No)[\s:：]*([0-9-]+)`),
		rule(`(?i)(?:계좌|Account)[\s:：]*([0-9-]+)`),
	}},
	{constants.InsuranceNumber, 0.8, []Rule{
		rule(`(?i)(?:보험증번호|가입자번호|피보험자번호|INSURANCE NUMBER)[\s:：]*([A-Za-z0-9-]+)`),
		rule(`([A-Za-z0-9]{10,})`),
		rule(`(?i)(?:Policy|Certificate|Member|Group)[\s:：]*([A-Za-z0-9-]+)`),
	}},
}

var registryIndex = buildIndex()

func buildIndex() map[constants.FieldName]*FieldDef {
	idx := make(map[constants.FieldName]*FieldDef, len(Registry))
	for i := range Registry {
		idx[Registry[i].Name] = &Registry[i]
	}
	return idx
}

// Lookup returns the field definition for name, or nil for unknown names.
func Lookup(name constants.FieldName) *FieldDef {
	return registryIndex[name]
}

// WeightOf returns the importance weight for name, falling back to
// defaultWeight for names the registry does not know.
func WeightOf(name constants.FieldName) float64 {
	if def := registryIndex[name]; def != nil {
		return def.Weight
	}
	return defaultWeight
}

// TotalFields is the number of registered fields.
func TotalFields() int {
	return len(Registry)
}
