// Package language maps the language names fanfiction sites report (usually
// full words like "English") and ISO 639 codes onto the ISO 639-2 form the
// archive packager expects, plus display names for rendered pages.
package language
