package ontology

import "github.com/ppiankov/caregap/internal/model"

// DefaultDefinition returns the built-in medical capability taxonomy.
// Critical capabilities are the ones whose regional absence defines a
// coverage desert.
func DefaultDefinition() Definition {
	return Definition{
		Capabilities: map[model.CapabilityCode]Capability{
			// Emergency & critical care
			// Emergency care carries no prerequisite dependencies: diagnostics
			// and supplies make it better, they do not make it impossible
			"emergency_care": {
				Label:    "24/7 Emergency Medical Services",
				Critical: true,
			},
			"intensive_care_unit": {
				Label:     "Intensive Care Unit (ICU)",
				Critical:  true,
				DependsOn: []model.CapabilityCode{"oxygen_supply", "pharmacy"},
			},
			"critical_care":     {Label: "Critical Care Services"},
			"trauma_center": {
				Label:     "Trauma Center",
				DependsOn: []model.CapabilityCode{"emergency_care", "blood_bank", "operating_room", "intensive_care_unit"},
			},
			"ambulance_service": {Label: "Ambulance/Emergency Transport", Critical: true},
			"burn_unit":         {Label: "Burn Unit"},

			// Surgical services
			"basic_surgery": {
				Label:     "Basic Surgical Services",
				Critical:  true,
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "sterilization"},
			},
			"major_surgery": {
				Label:     "Major Surgery (complex operations)",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "sterilization", "intensive_care_unit", "blood_bank"},
			},
			"cesarean_section": {
				Label:     "Cesarean Section (C-section)",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "sterilization", "blood_bank"},
			},
			"orthopedic_surgery": {
				Label:     "Orthopedic Surgery",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "xray"},
			},
			"cardiac_surgery": {
				Label:     "Cardiac Surgery",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "intensive_care_unit", "blood_bank", "ecg"},
			},
			"neurosurgery": {
				Label:     "Neurosurgery",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia", "intensive_care_unit", "ct_scan"},
			},
			"ophthalmic_surgery": {
				Label:     "Eye Surgery/Ophthalmic Surgery",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia"},
			},
			"dental_surgery": {
				Label:     "Dental Surgery",
				DependsOn: []model.CapabilityCode{"operating_room", "anesthesia"},
			},
			"plastic_surgery":      {Label: "Plastic Surgery"},
			"laparoscopic_surgery": {Label: "Minimally Invasive/Laparoscopic Surgery"},

			// Maternal & child health
			"maternity_delivery": {
				Label:     "Maternity/Childbirth Delivery Services",
				Critical:  true,
				DependsOn: []model.CapabilityCode{"blood_bank", "oxygen_supply"},
			},
			"prenatal_care":  {Label: "Prenatal/Antenatal Care"},
			"postnatal_care": {Label: "Postnatal Care"},
			"neonatal_intensive_care": {
				Label:     "Neonatal ICU (NICU)",
				DependsOn: []model.CapabilityCode{"oxygen_supply", "pharmacy"},
			},
			"pediatric_care": {Label: "Pediatric Care", Critical: true},
			"pediatric_intensive_care": {
				Label:     "Pediatric ICU (PICU)",
				DependsOn: []model.CapabilityCode{"oxygen_supply", "pharmacy"},
			},
			"immunization":    {Label: "Immunization/Vaccination Services"},
			"family_planning": {Label: "Family Planning Services"},

			// Diagnostics & imaging
			"laboratory_services": {Label: "Laboratory/Pathology Services", Critical: true},
			"xray":                {Label: "X-ray/Radiography"},
			"ultrasound":          {Label: "Ultrasound/Sonography"},
			"ct_scan":             {Label: "CT Scan (Computed Tomography)"},
			"mri":                 {Label: "MRI (Magnetic Resonance Imaging)"},
			"ecg":                 {Label: "ECG/EKG (Electrocardiogram)"},
			"blood_testing":       {Label: "Blood Testing Services"},
			"microbiology":        {Label: "Microbiology Testing"},

			// Specialty care
			"cardiology": {Label: "Cardiology Services"},
			"oncology":   {Label: "Cancer/Oncology Services"},
			"chemotherapy": {
				Label:     "Chemotherapy",
				DependsOn: []model.CapabilityCode{"pharmacy", "laboratory_services"},
			},
			"radiotherapy": {Label: "Radiotherapy/Radiation Therapy"},
			"dialysis": {
				Label:     "Dialysis/Renal Services",
				DependsOn: []model.CapabilityCode{"laboratory_services", "pharmacy"},
			},
			"hiv_aids_care":     {Label: "HIV/AIDS Treatment & Care"},
			"tuberculosis_care": {Label: "Tuberculosis (TB) Treatment"},
			"malaria_treatment": {Label: "Malaria Treatment"},
			"mental_health":     {Label: "Mental Health/Psychiatric Services"},
			"ophthalmology":     {Label: "Eye Care/Ophthalmology"},
			"dentistry":         {Label: "Dental Services"},
			"dermatology":       {Label: "Dermatology/Skin Care"},

			// Support services
			"pharmacy": {Label: "Pharmacy Services", Critical: true},
			"blood_transfusion": {
				Label:     "Blood Transfusion Services",
				Critical:  true,
				DependsOn: []model.CapabilityCode{"blood_bank", "laboratory_services"},
			},
			"blood_bank":    {Label: "Blood Bank/Blood Storage"},
			"oxygen_supply": {Label: "Oxygen Supply/Generation"},
			"operating_room": {Label: "Operating Room/Theatre"},
			"sterilization": {Label: "Sterilization Services"},
			"anesthesia":    {Label: "Anesthesia Services"},
			"physiotherapy": {Label: "Physiotherapy/Rehabilitation"},
			"nutrition":     {Label: "Nutrition/Dietary Services"},

			// General services
			"outpatient_care":  {Label: "Outpatient Services"},
			"inpatient_care":   {Label: "Inpatient/Hospital Admission"},
			"consultation":     {Label: "General Medical Consultation"},
			"health_screening": {Label: "Health Screening/Check-ups"},
			"telemedicine":     {Label: "Telemedicine/Virtual Consultation"},
		},
		Synonyms: map[string]model.CapabilityCode{
			// Emergency
			"emergency":          "emergency_care",
			"er":                 "emergency_care",
			"ed":                 "emergency_care",
			"a&e":                "emergency_care",
			"casualty":           "emergency_care",
			"24/7 emergency":     "emergency_care",
			"accident emergency": "emergency_care",

			// ICU
			"icu":                "intensive_care_unit",
			"intensive care":     "intensive_care_unit",
			"critical care unit": "intensive_care_unit",
			"nicu":               "neonatal_intensive_care",
			"picu":               "pediatric_intensive_care",

			// Surgery
			"surgery":   "basic_surgery",
			"surgical":  "basic_surgery",
			"operation": "basic_surgery",
			"or":        "operating_room",
			"theatre":   "operating_room",
			"c-section": "cesarean_section",
			"csection":  "cesarean_section",
			"caesarean": "cesarean_section",

			// Maternity
			"maternity":  "maternity_delivery",
			"delivery":   "maternity_delivery",
			"childbirth": "maternity_delivery",
			"obstetrics": "maternity_delivery",
			"antenatal":  "prenatal_care",
			"postnatal":  "postnatal_care",

			// Imaging
			"x-ray":               "xray",
			"x ray":               "xray",
			"radiography":         "xray",
			"roentgen":            "xray",
			"sonography":          "ultrasound",
			"echo":                "ultrasound",
			"us":                  "ultrasound",
			"u/s":                 "ultrasound",
			"ct":                  "ct_scan",
			"cat scan":            "ct_scan",
			"computed tomography": "ct_scan",
			"magnetic resonance":  "mri",

			// Lab
			"laboratory": "laboratory_services",
			"lab":        "laboratory_services",
			"pathology":  "laboratory_services",
			"blood test": "blood_testing",
			"blood work": "blood_testing",

			// Cardiology
			"ekg":               "ecg",
			"electrocardiogram": "ecg",
			"heart monitor":     "ecg",

			// Other
			"dispensary":       "pharmacy",
			"transfusion":      "blood_transfusion",
			"oxygen":           "oxygen_supply",
			"o2":               "oxygen_supply",
			"rehab":            "physiotherapy",
			"physical therapy": "physiotherapy",
			"pt":               "physiotherapy",
			"hiv":              "hiv_aids_care",
			"aids":             "hiv_aids_care",
			"tb":               "tuberculosis_care",
			"cancer":           "oncology",
			"chemo":            "chemotherapy",
			"radiation":        "radiotherapy",
			"kidney":           "dialysis",
			"renal":            "dialysis",
			"hemodialysis":     "dialysis",
			"mental":           "mental_health",
			"psychiatric":      "mental_health",
			"psych":            "mental_health",
			"eye":              "ophthalmology",
			"vision":           "ophthalmology",
			"dental":           "dentistry",
			"teeth":            "dentistry",
			"pediatric":        "pediatric_care",
			"paediatric":       "pediatric_care",
			"children":         "pediatric_care",
			"child":            "pediatric_care",
			"vaccine":          "immunization",
			"vaccination":      "immunization",
		},
	}
}

// Default builds the built-in ontology. The definition is static, so a
// construction failure is a programming error.
func Default() *Ontology {
	o, err := New(DefaultDefinition())
	if err != nil {
		panic(err)
	}
	return o
}
