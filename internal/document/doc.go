// Package document turns an export into named text documents.
//
// It provides the text normalization helpers used for every format
// (StripMarkup for comment bodies, CleanName for file names), the
// Formatter implementations (plain text, Markdown and JSON) and Save,
// which writes documents to disk.
//
// The plain-text format is the reference output. Its layout is:
//
//	<title>
//
//	<description>
//
//	<label>: <watch URL>
//
//	-------------------------------------------------------
//
//	<body>
package document
