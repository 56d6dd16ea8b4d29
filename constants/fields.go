package constants

// FieldName identifies one datum extracted from a claim form. The set is
// closed: the pattern registry, weight table, and enhancer all dispatch on it.
type FieldName string

const (
	// Policyholder and insured information.
	PolicyownerName FieldName = "policyownerName"
	InsuredName     FieldName = "insuredName"
	Occupation      FieldName = "occupation"
	HKIDPassport    FieldName = "hkidPassport"
	DateOfBirth     FieldName = "dateOfBirth"

	// Hospital information.
	HospitalName    FieldName = "hospitalName"
	HospitalID      FieldName = "hospitalId"
	HospitalAddress FieldName = "hospitalAddress"

	// Patient information.
	PatientName     FieldName = "patientName"
	PatientIDNumber FieldName = "patientIdNumber"

	// Contact information.
	Address FieldName = "address"
	Phone   FieldName = "phone"

	// Medical information.
	TreatmentDate FieldName = "treatmentDate"
	Department    FieldName = "department"
	DoctorName    FieldName = "doctorName"
	Diagnosis     FieldName = "diagnosis"
	Treatment     FieldName = "treatment"
	Prescription  FieldName = "prescription"

	// Financial information.
	TotalCost      FieldName = "totalCost"
	PatientPayment FieldName = "patientPayment"
	InsuranceClaim FieldName = "insuranceClaim"

	// Banking information.
	AccountHolderName FieldName = "accountHolderName"
	Currency          FieldName = "currency"
	BankName          FieldName = "bankName"
	HKDBankAccount    FieldName = "hkdBankAccount"
	USDBankAccount    FieldName = "usdBankAccount"
	BankNumber        FieldName = "bankNumber"
	AccountNumber     FieldName = "accountNumber"
	InsuranceNumber   FieldName = "insuranceNumber"
)

// Validation tiers. Required fields gate isValid; important and optional
// fields only contribute points.
var (
	RequiredFields  = []FieldName{PatientName, HospitalName}
	ImportantFields = []FieldName{TreatmentDate, Department, TotalCost}
	OptionalFields  = []FieldName{Phone, Address, Diagnosis, Treatment, Prescription}
)

// FormTypeKoreanMedical is the only form type this extractor recognizes.
const FormTypeKoreanMedical = "korean_medical_insurance"
