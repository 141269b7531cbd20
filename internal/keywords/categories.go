package keywords

// Category tables for ATS keyword extraction. Matching is case-insensitive
// containment; entries are the canonical display spellings.
var categories = map[string][]string{
	"languages": {
		"Python", "JavaScript", "Java", "C++", "C#", "TypeScript", "Go",
		"Golang", "Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "SQL",
		"HTML", "CSS", "Bash", "Shell", "PowerShell",
	},
	"frameworks": {
		"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask",
		"FastAPI", "Spring", "Spring Boot", ".NET", "Rails", "Laravel",
		"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy",
		"Next.js", "Svelte",
	},
	"infrastructure": {
		"AWS", "Azure", "Google Cloud", "GCP", "Docker", "Kubernetes",
		"Terraform", "Ansible", "Jenkins", "CircleCI", "GitHub Actions",
		"CI/CD", "DevOps", "CloudFormation", "Lambda", "EC2", "S3",
	},
	"databases": {
		"MongoDB", "PostgreSQL", "MySQL", "SQL Server", "Oracle", "Redis",
		"Elasticsearch", "DynamoDB", "Cassandra", "SQLite", "MariaDB",
		"NoSQL",
	},
	"tools": {
		"Git", "GitHub", "GitLab", "Bitbucket", "Jira", "Confluence",
		"Jupyter", "Tableau", "PowerBI", "Postman", "Swagger", "Maven",
		"Gradle",
	},
	"methodologies": {
		"Agile", "Scrum", "Kanban", "Waterfall", "TDD", "BDD",
		"Microservices", "REST API", "RESTful", "GraphQL", "OOP", "SDLC",
	},
	"ai_ml": {
		"Machine Learning", "Deep Learning", "Neural Network", "NLP",
		"Computer Vision", "Data Science", "Big Data", "Apache Spark",
		"Hadoop", "MLOps",
	},
}

// suggestions maps a category to the advice template surfaced for missing
// keywords of that category.
var suggestions = map[string]string{
	"languages":      "Add %s to your skills section if you have experience with this programming language.",
	"frameworks":     "Highlight any projects or work experience using %s.",
	"infrastructure": "Add %s experience to your resume if you've worked with this platform.",
	"databases":      "Include %s in your technical skills and mention specific use cases in your work experience.",
	"tools":          "List %s in your tools section if you've used it.",
	"methodologies":  "Demonstrate %s experience by describing how you've applied this methodology in past projects.",
	"ai_ml":          "Add %s to your skills and showcase relevant projects or research.",
}

const defaultSuggestion = "Consider adding %s to your resume if you have relevant experience."
