package cgen

// Empty structs are not valid C, so a struct without fields gets a
// placeholder byte.
const headerTemplate = `{{.Header}}
#ifndef {{.Guard}}
#define {{.Guard}}

#include <stdbool.h>
#include <stdint.h>

#ifdef __cplusplus
extern "C" {
#endif
{{range .Structs}}
{{if .Desc}}{{comment "//" .Desc}}
{{end}}typedef struct {{.Name}} {
{{- range .Members}}
    {{.Type}} {{.Name}}{{subscripts .Dims}};
{{- else}}
    uint8_t reserved_;
{{- end}}
} {{.Name}};
{{end}}
#ifdef __cplusplus
}
#endif

#endif /* {{.Guard}} */
`
