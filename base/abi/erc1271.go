package abi

// isValidSignature only, the rest of the standard is never called
const erc1271ABIJson = `[{
  "name": "isValidSignature",
  "type": "function",
  "stateMutability": "view",
  "inputs": [
    {"internalType": "bytes32", "name": "_hash", "type": "bytes32"},
    {"internalType": "bytes", "name": "_signature", "type": "bytes"}
  ],
  "outputs": [{"internalType": "bytes4", "name": "magicValue", "type": "bytes4"}]
}]`
