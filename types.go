package doccache

import "github.com/unkn0wn-root/doccache/source"

// Document is a schema-free record fetched from a backing store.
type Document = source.Document

// SourceType selects the backing store consulted on a miss. It is also the
// first segment of the cache key.
type SourceType string

const (
	SourceMongoDB SourceType = "mongodb"
	SourceS3      SourceType = "s3"
)

// DocType is a domain entity kind. For SourceMongoDB it names the collection.
type DocType string

const (
	DocAccounts    DocType = "accounts"
	DocCalendars   DocType = "calendars"
	DocCategories  DocType = "categories"
	DocContacts    DocType = "contacts"
	DocDrafts      DocType = "drafts"
	DocEvents      DocType = "events"
	DocFavorites   DocType = "favorites"
	DocFiles       DocType = "files"
	DocFolders     DocType = "folders"
	DocLabels      DocType = "labels"
	DocMessages    DocType = "messages"
	DocProfiles    DocType = "profiles"
	DocRolodexs    DocType = "rolodexs"
	DocSpools      DocType = "spools"
	DocSuggestions DocType = "suggestions"
	DocTemplates   DocType = "templates"
	DocThreads     DocType = "threads"
	DocTokens      DocType = "tokens"
	DocTrackers    DocType = "trackers"
	DocUsers       DocType = "users"
	DocWaitlists   DocType = "waitlists"
	DocWhitelists  DocType = "whitelists"
)
