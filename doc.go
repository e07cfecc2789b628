/*
Package qalam is about extensions for text editors working with Arabic script.

Description

Editors for Arabic text need a handful of small helpers which plain code
editors lack: joining letters into their contextual forms, re-ordering
right-to-left runs for display on left-to-right devices, inserting and
removing diacritics (tashkeel), and correcting very common misspellings
while typing. Next to these, users expect housekeeping tools like backups of
their work folder, a project file tree and a picker for the syntax theme.

Package qalam does not implement an editor. It defines a narrow contract
between an editor host and a set of extensions. The host declares which
optional capabilities it supports (opening tabs, a status bar, modal dialogs,
a UI event loop, …) at the time an extension is registered; extensions never
probe the host for methods at runtime.

Contents

Base package qalam holds the host contract (types Host, Editor, Cursor and
Capabilities), the extension loader, a bounded worker pool for background
text processing, and detection of the user interface language.

The extensions live in sub-packages:

   arabic       classification of Arabic code-points, diacritics
   shaping      contextual letter-form reshaping
   direction    directional reverser for mixed-direction text
   autocorrect  auto-correction of common misspellings
   backup       numbered backup folders
   project      project file tree
   theme        syntax theme picker
   settings     persistent extension settings

Menu and Context Items

Every extension contributes menu items, each a pair of a display name and a
callback. Extensions may additionally provide context-menu items with an
optional keyboard shortcut, and plain shortcuts. The Loader collects all of
them and lets the host trigger them by name or by shortcut.

BSD License

Copyright (c) 2021–26, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package qalam

import (
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return tracing.Select("qalam.core")
}
