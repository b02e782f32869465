// Package schema loads extraction schemas from YAML or JSON documents and
// turns them into field catalogs for the resolver.
//
//	name: invoice
//	includes: [common]
//	fields:
//	  - name: Price
//	    type: currency
//	  - name: Total
//	    type: currency
//	    transformation:
//	      prompt: "Add {Price} and {Tax}"
//
// Documents may include other documents by name; included fields come
// first and the first definition of a name wins.
package schema
