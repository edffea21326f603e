package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// impresoraCOP formatea montos con separadores es-CO (punto de miles, coma
// decimal), que es como los muestra la tienda.
var impresoraCOP = message.NewPrinter(language.MustParse("es-CO"))

// moneda formatea un precio en pesos para la salida de los comandos.
func moneda(d decimal.Decimal) string {
	f, _ := d.Float64()
	return impresoraCOP.Sprintf("$ %.2f", f)
}

// nuevaTabla tabwriter con el formato de las tablas de la consola.
func nuevaTabla(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// leerLinea lee una línea de in, sin el salto final. Para pedir datos que no
// llegaron por flag (por ejemplo la contraseña).
func leerLinea(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	linea, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && linea == "" {
		return "", err
	}
	return strings.TrimRight(linea, "\r\n"), nil
}
