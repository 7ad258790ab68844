package rules

import "github.com/abdidvp/reviewkit/internal/domain"

const (
	recParameterized = "Use parameterized queries or prepared statements"
	recSecrets       = "Use environment variables or secure secret management"
	recSanitize      = "Sanitize user input and use safe DOM manipulation methods"
	recCrypto        = "Use stronger algorithms (SHA256, bcrypt, secrets module)"
	recStreaming     = "Use streaming or chunked reading for large files"
)

// SecurityRules apply to every language.
var SecurityRules = []Rule{
	{
		ID: "sql-injection-fstring", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`execute\([^)]*f["'].*\{.*\}`),
		Message:        "SQL Injection vulnerability - use parameterized queries",
		Recommendation: recParameterized,
	},
	{
		ID: "sql-injection-format", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`execute\([^)]*%\s*%`),
		Message:        "SQL Injection risk - use parameterized queries",
		Recommendation: recParameterized,
	},
	{
		ID: "sql-injection-concat", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`execute\([^)]*\+\s*['"]`),
		Message:        "SQL Injection risk - avoid string concatenation",
		Recommendation: recParameterized,
	},
	{
		ID: "hardcoded-api-key", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`(?i)api[_\s-]?key\s*=\s*["'][^"']+["']`),
		Message:        "Hardcoded API key detected",
		Recommendation: recSecrets,
	},
	{
		ID: "hardcoded-password", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`(?i)password\s*=\s*["'][^"']+["']`),
		Message:        "Hardcoded password detected",
		Recommendation: recSecrets,
	},
	{
		ID: "hardcoded-secret", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`(?i)secret\s*=\s*["'][^"']+["']`),
		Message:        "Hardcoded secret detected",
		Recommendation: recSecrets,
	},
	{
		ID: "hardcoded-token", Category: domain.CategorySecurity, Severity: domain.SeverityCritical,
		Matcher:        Regex(`(?i)token\s*=\s*["'][^"']+["']`),
		Message:        "Hardcoded token detected",
		Recommendation: recSecrets,
	},
	{
		ID: "xss-inner-html", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`innerHTML\s*=\s*[^;]+`),
		Message:        "XSS vulnerability - avoid innerHTML with user input",
		Recommendation: recSanitize,
	},
	{
		ID: "xss-document-write", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`document\.write\([^)]*\)`),
		Message:        "XSS risk - avoid document.write",
		Recommendation: recSanitize,
	},
	{
		ID: "code-injection-eval", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`\beval\([^)]*\)`),
		Message:        "Code injection risk - avoid eval",
		Recommendation: recSanitize,
	},
	{
		ID: "weak-hash-md5", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`hashlib\.md5\(|createHash\(\s*['"]md5['"]|\bmd5\.New\(`),
		Message:        "Weak hashing algorithm - MD5 is broken",
		Recommendation: recCrypto,
	},
	{
		ID: "weak-hash-sha1", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`hashlib\.sha1\(|createHash\(\s*['"]sha1['"]|\bsha1\.New\(`),
		Message:        "Weak hashing algorithm - SHA1 is deprecated",
		Recommendation: recCrypto,
	},
	{
		ID: "weak-random", Category: domain.CategorySecurity, Severity: domain.SeverityHigh,
		Matcher:        Regex(`\bRandom\(\)|Math\.random\(\)`),
		Message:        "Insecure random number generation",
		Recommendation: recCrypto,
	},
}

// PerformanceRules apply to every language.
var PerformanceRules = []Rule{
	{
		ID: "nested-loop", Category: domain.CategoryPerformance, Severity: domain.SeverityMedium,
		Matcher:        Regex(`for\s+.*:\s*\n\s*for\s+.*:`),
		Message:        "Nested loops detected - potential O(n²) complexity",
		Recommendation: "Consider using more efficient algorithms or data structures",
		Column:         ColumnNone,
	},
	{
		ID: "n-plus-one", Category: domain.CategoryPerformance, Severity: domain.SeverityHigh,
		Matcher:        Regex(`for\s+\w+\s+in\s+.*(?:\.objects\..*|\.all\(\)):\s*\n.*\.\w+\.[a-z_]+`),
		Message:        "Potential N+1 query problem",
		Recommendation: "Use select_related() or prefetch_related() for Django, joinedload() for SQLAlchemy",
		Column:         ColumnNone,
	},
	{
		ID: "whole-file-read", Category: domain.CategoryPerformance, Severity: domain.SeverityMedium,
		Matcher:        Regex(`open\([^)]+\)\.read\(\)`),
		Message:        "Reading entire file into memory",
		Recommendation: recStreaming,
	},
	{
		ID: "readlines", Category: domain.CategoryPerformance, Severity: domain.SeverityMedium,
		Matcher:        Regex(`readlines\(\)`),
		Message:        "Loading all lines into memory",
		Recommendation: recStreaming,
	},
}

// QualityRules apply to every language. Duplicate blocks are found by the
// review engine, which runs after these.
var QualityRules = []Rule{
	{
		ID: "file-length", Category: domain.CategoryQuality, Severity: domain.SeverityMedium,
		Matcher: MatchFunc(fileLength),
		Column:  ColumnNone,
	},
	{
		ID: "function-length", Category: domain.CategoryQuality, Severity: domain.SeverityMedium,
		Matcher: MatchFunc(functionLength),
		Column:  ColumnNone,
	},
	{
		ID: "magic-number", Category: domain.CategoryQuality, Severity: domain.SeverityLow,
		Matcher:        MatchFunc(magicNumbers),
		Message:        "Magic number '{0}' detected",
		Recommendation: "Extract magic numbers to named constants",
	},
	{
		ID: "todo-comment", Category: domain.CategoryQuality, Severity: domain.SeverityInfo,
		Matcher:        MatchFunc(todoMarkers),
		Message:        "Unresolved TODO/FIXME comment",
		Recommendation: "Address TODO items or create tracking issues",
		Column:         ColumnNone,
	},
}

var debugPrint = Rule{
	ID: "debug-print", Category: domain.CategoryBestPractices, Severity: domain.SeverityLow,
	Matcher:        Regex(`\bprint\(|console\.log\(|System\.out\.print`),
	Message:        "Debug print statement in production code",
	Recommendation: "Use proper logging instead of print statements",
	SkipTestFiles:  true,
}

var missingTypeHint = Rule{
	ID: "missing-return-type", Category: domain.CategoryBestPractices, Severity: domain.SeverityLow,
	Matcher:        Regex(`def\s+(\w+)\s*\(([^)]*)\)\s*:`),
	Message:        "Function '{1}' missing return type hint",
	Recommendation: "Add type hints for better code documentation",
	Column:         ColumnNone,
}

func unhandledTry(m Matcher) Rule {
	return Rule{
		ID: "unhandled-try", Category: domain.CategoryBestPractices, Severity: domain.SeverityMedium,
		Matcher:        m,
		Message:        "Try block without except clause",
		Recommendation: "Add proper error handling",
		Column:         ColumnNone,
	}
}

// PythonBestPractices is the best-practices table for indentation-scoped code.
var PythonBestPractices = []Rule{
	unhandledTry(MatchFunc(pythonUnhandledTry)),
	debugPrint,
	missingTypeHint,
}

// BraceBestPractices is the best-practices table for brace-scoped code.
var BraceBestPractices = []Rule{
	unhandledTry(MatchFunc(braceUnhandledTry)),
	debugPrint,
}
