package constants

// Method records how a result was produced. Stored verbatim in result
// metadata, so values are stable.
const (
	MethodLocalOCR = "local_ocr" // caller supplied OCR'd text from a scan
	MethodText     = "text"      // caller supplied plain text directly
	MethodFailed   = "failed"    // upstream pipeline failure shape
)
