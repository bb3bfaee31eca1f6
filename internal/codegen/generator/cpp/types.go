package cpp

const typesTemplate = `{{.Header}}
#pragma once
#include <cstdint>
{{- if .HasStrings}}
#include <string>
{{- end}}
{{range .Structs}}
{{if .Desc}}{{comment "//" .Desc}}
{{end}}class {{.Name}} {
public:
{{- range .Members}}
{{- if .Desc}}
{{comment "    //" .Desc}}
{{- end}}
    {{.Type}} {{.Name}}{{subscripts .Dims}};
{{- end}}
};
{{end}}`
