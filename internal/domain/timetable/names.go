package timetable

// CourseNames maps short course codes as they appear in grid cells to
// full display names. Unknown codes fall back to the code itself, so the
// table only needs to cover what the registrar actually abbreviates.
type CourseNames map[string]string

// Resolve returns the display name for a course code.
func (n CourseNames) Resolve(code string) string {
	if name, ok := n[code]; ok {
		return name
	}
	return code
}

// DefaultCourseNames returns the code-to-name table for the source
// timetable. Lab variants are listed separately because the grid spells
// them inconsistently ("DS Lab", "DS-Lab", "PF lab").
func DefaultCourseNames() CourseNames {
	return CourseNames{
		"DAA":      "Design & Analysis of Algorithms",
		"DBS":      "Database Systems",
		"SDA":      "Software Design & Architecture",
		"CN":       "Computer Networks",
		"TBW":      "Technical & Business Writing",
		"COAL":     "Computer Organization & Assembly Language",
		"DS":       "Data Structures",
		"TOA":      "Theory of Automata",
		"AP":       "Applied Physics",
		"Discrete": "Discrete Mathematics",
		"IS":       "Information Security",
		"OOP":      "Object Oriented Programming",
		"PF":       "Programming Fundamentals",
		"ICT":      "Information & Communication Technologies",
		"LA":       "Linear Algebra",
		"Calculus": "Calculus",
		"DLD":      "Digital Logic Design",
		"CAL":      "Computer Architecture & Logic Design",
		"OS":       "Operating Systems",
		"SE":       "Software Engineering",
		"AI":       "Artificial Intelligence",
		"ML":       "Machine Learning",
		"NLP":      "Natural Language Processing",
		"CV":       "Computer Vision",
		"Web":      "Web Technologies",
		"Mobile":   "Mobile Application Development",
		"Cloud":    "Cloud Computing",
		"Cyber":    "Cyber Security",

		// Lab courses
		"CN Lab":              "Computer Networks Lab",
		"DBS Lab":             "Database Systems Lab",
		"COAL Lab":            "Computer Organization & Assembly Language Lab",
		"DS Lab":              "Data Structures Lab",
		"DS-Lab":              "Data Structures Lab",
		"PF Lab":              "Programming Fundamentals Lab",
		"PF lab":              "Programming Fundamentals Lab",
		"ICT Lab":             "ICT Lab",
		"ICT lab":             "ICT Lab",
		"BE Lab":              "Business Economics Lab",
		"DF Lab":              "Digital Forensics Lab",
		"FE Lab":              "Functional English Lab",
		"Eng-1 Lab":           "English Lab",
		"IT in Business lab":  "IT in Business Lab",
		"Intro to D. Sci Lab": "Introduction to Data Science Lab",
		"AML Lab":             "Applied Machine Learning Lab",
		"OOP Lab":             "Object Oriented Programming Lab",
		"DLD Lab":             "Digital Logic Design Lab",
		"PAI Lab":             "Probability and Inference Lab",
		"OS Lab":              "Operating Systems Lab",
		"SCD Lab":             "Software Construction & Development Lab",
		"SSD Lab":             "System & Software Design Lab",
		"CV Lab":              "Computer Vision Lab",
		"FA Lab":              "Financial Accounting Lab",
		"FM Lab":              "Financial Management Lab",
		"ML Lab":              "Machine Learning Lab",
		"DCNet lab":           "Data Communication & Networking Lab",
		"ENA lab":             "Electrical Network Analysis Lab",
		"MPI lab":             "Microprocessor Interfacing Lab",
		"IOOP-Lab":            "Introduction to OOP Lab",
		"DS&BA Lab":           "Data Structures & Business Analytics Lab",

		// Additional courses
		"Intro to D. Sci": "Introduction to Data Science",
		"Intro. to SE":    "Introduction to Software Engineering",
		"Applied Physics": "Applied Physics",
		"Cyber Security":  "Cyber Security",
		"Eng-1":           "Functional English",
		"IST / UoS":       "Introduction to Information Systems",
		"IT in Business":  "IT in Business",
		"Entrep":          "Entrepreneurship",
		"GenAI":           "Generative AI",
		"Macro Eco":       "Macroeconomics",
		"Psych":           "Psychology",
		"Socio":           "Sociology",
		"KRR":             "Knowledge Representation & Reasoning",
		"SQE":             "Software Quality Engineering",
		"SSD":             "System & Software Design",
		"PDC":             "Parallel & Distributed Computing",
		"OR":              "Operations Research",
		"OODS":            "Object Oriented Data Structures",
		"MVC":             "Multivariable Calculus",
		"MPI":             "Microprocessor Interfacing",
		"HRM":             "Human Resource Management",
		"GT":              "Graph Theory",
		"FOM":             "Fundamentals of Management",
		"FSPM":            "Fundamentals of Project Management",
		"FM":              "Financial Management",
		"FA":              "Financial Accounting",
		"Ethics":          "Ethics",
		"ENG":             "English",
		"EM":              "Engineering Mathematics",
		"EMT":             "Electromagnetic Theory",
		"ENA":             "Electrical Network Analysis",
		"EDC":             "Electronic Devices & Circuits",
		"DCNet":           "Data Communication & Networking",
		"DCB":             "Database Concepts",
		"DAB2":            "Database Systems 2",
		"DSA":             "Data Structures & Algorithms",
		"DLP":             "Deep Learning Projects",
		"BM1":             "Business Mathematics 1",
		"BM2":             "Business Mathematics 2",
		"AML":             "Applied Machine Learning",
		"ADC":             "Analog & Digital Communication",
		"AC":              "Applied Calculus",
		"CA":              "Computer Architecture",
		"CB":              "Consumer Behavior",
		"CT":              "Coding Theory",
		"BF":              "Business Finance",
		"EIS":             "Enterprise Information Systems",
		"FOA":             "Foundations of Algorithms",
		"ICC":             "Introduction to Cloud Computing",
		"IA":              "Information Assurance",
		"IOOP":            "Introduction to Object Oriented Programming",
		"ME":              "Managerial Economics",
		"MFM":             "Mathematical Foundations",
		"MM":              "Marketing Management",
		"NC":              "Neural Computing",
		"POE":             "Principles of Economics",
		"PST":             "Probability & Statistics",
		"PFB":             "Programming Fundamentals - Business",
		"RS":              "Recommender Systems",
		"SCD":             "Software Construction & Development",
		"ST":              "Software Testing",
		"UoS":             "Understanding of Self",
		"WP":              "Web Programming",
	}
}
