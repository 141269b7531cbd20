package parser

// technicalSkills is the lookup table used for skill extraction. Matching
// is case-insensitive on word boundaries.
var technicalSkills = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby",
	"php", "go", "rust", "swift", "kotlin", "scala", "r",
	"react", "angular", "vue", "node.js", "django", "flask", "fastapi",
	"spring", "express", "next.js", "rails", "laravel",
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "sqlite",
	"docker", "kubernetes", "terraform", "ansible", "jenkins",
	"aws", "azure", "gcp", "git", "ci/cd",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"html", "css", "sass", "webpack", "graphql", "rest",
	"bash", "linux", "windows", "agile", "scrum",
}
