package codec

import "strings"

// Modality is a DICOM acquisition modality.
type Modality int

const (
	ModalityOther Modality = iota
	ModalityCT             // Computed Tomography
	ModalityMR             // Magnetic Resonance
	ModalityCR             // Computed Radiography
	ModalityDX             // Digital X-Ray
	ModalityMG             // Mammography
	ModalityUS             // Ultrasound
	ModalityNM             // Nuclear Medicine
	ModalityPT             // Positron Emission Tomography
	ModalitySM             // Slide Microscopy
)

var modalityNames = map[Modality]string{
	ModalityOther: "OT",
	ModalityCT:    "CT",
	ModalityMR:    "MR",
	ModalityCR:    "CR",
	ModalityDX:    "DX",
	ModalityMG:    "MG",
	ModalityUS:    "US",
	ModalityNM:    "NM",
	ModalityPT:    "PT",
	ModalitySM:    "SM",
}

func (m Modality) String() string {
	if s, ok := modalityNames[m]; ok {
		return s
	}
	return "OT"
}

// ParseModality maps a DICOM Modality (0008,0060) value to a Modality.
// Unknown values map to ModalityOther.
func ParseModality(s string) Modality {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CT":
		return ModalityCT
	case "MR", "MRI":
		return ModalityMR
	case "CR":
		return ModalityCR
	case "DX":
		return ModalityDX
	case "MG":
		return ModalityMG
	case "US":
		return ModalityUS
	case "NM":
		return ModalityNM
	case "PT", "PET":
		return ModalityPT
	case "SM":
		return ModalitySM
	default:
		return ModalityOther
	}
}

// RequiresLossless reports whether regulatory guidance requires lossless
// storage for the modality.
func (m Modality) RequiresLossless() bool {
	return m == ModalityMG
}

// RecommendedType returns the codec usually chosen for the modality.
func (m Modality) RecommendedType() Type {
	if m == ModalityNM {
		return TypeJPEGLS
	}
	return TypeJPEG2000
}
