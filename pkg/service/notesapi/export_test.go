package notesapi

// NoteEndpoint is exported for testing path escaping
var NoteEndpoint = noteEndpoint
